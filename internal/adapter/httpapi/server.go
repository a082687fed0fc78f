// Package httpapi exposes the ledger over REST. Handlers are thin: they
// parse wire values, call a service and map domain errors to statuses.
package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger-backend/internal/domain"
	"github.com/finledger/finledger-backend/internal/usecase/account"
	"github.com/finledger/finledger-backend/internal/usecase/asset"
	"github.com/finledger/finledger-backend/internal/usecase/trading"
)

// Server wires the fiber app to the usecase services.
type Server struct {
	app      *fiber.App
	log      *logrus.Logger
	accounts *account.Service
	assets   *asset.Service
	trading  *trading.Service
	users    domain.UserRepository
}

// NewServer creates the fiber app with all routes registered. Every route
// sits behind basic authentication.
func NewServer(log *logrus.Logger, accounts *account.Service, assets *asset.Service, trading *trading.Service, users domain.UserRepository) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		log:      log,
		accounts: accounts,
		assets:   assets,
		trading:  trading,
		users:    users,
	}

	s.app.Use(s.requestLogger())
	s.app.Use(s.basicAuth())

	s.app.Get("/contacorrente/:accountId", s.getAccount)
	s.app.Post("/contacorrente", s.createAccount)
	s.app.Post("/contacorrente/:accountId/lancamento", s.includeLaunch)
	s.app.Get("/contacorrente/:accountId/lancamento", s.getLaunches)
	s.app.Get("/contacorrente/:accountId/saldo", s.getBalance)

	s.app.Get("/ativo", s.listAssets)
	s.app.Get("/ativo/posicao", s.getPositions)
	s.app.Get("/ativo/:assetId", s.getAsset)
	s.app.Post("/ativo", s.createAsset)
	s.app.Put("/ativo/:assetId", s.updateAsset)
	s.app.Delete("/ativo/:assetId", s.deleteAsset)
	s.app.Post("/ativo/:assetId/adiciona-valor-mercado", s.includeMarketPrice)
	s.app.Put("/ativo/:assetId/exclui-valor-mercado", s.excludeMarketPrice)
	s.app.Post("/ativo/:assetId/movimentacao", s.includeMovement)
	s.app.Get("/ativo/:assetId/movimentacao", s.getMovements)

	s.app.Post("/movimentacao/compra", s.movementBuy)
	s.app.Post("/movimentacao/venda", s.movementSell)

	return s
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server, draining in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
