package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finledger/finledger-backend/internal/domain"
)

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidDate = errors.New("invalid date")
)

func (s *Server) listAssets(c *fiber.Ctx) error {
	assets, err := s.assets.FindAll(c.Context())
	if err != nil {
		return respondError(c, s.log, err)
	}

	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	return c.JSON(out)
}

func (s *Server) getAsset(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}

	asset, err := s.assets.FindByID(c.Context(), assetID)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.JSON(toAssetResponse(asset))
}

func (s *Server) createAsset(c *fiber.Ctx) error {
	var req assetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return badRequest(c, "invalid issueDate")
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return badRequest(c, "invalid dueDate")
	}

	asset, err := s.assets.Create(c.Context(), principal(c), req.Name, req.Type, issueDate, dueDate)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssetResponse(asset))
}

func (s *Server) updateAsset(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	var req assetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	asset, err := s.assets.Update(c.Context(), principal(c), assetID, req.Name, req.Type)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.JSON(toAssetResponse(asset))
}

func (s *Server) deleteAsset(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}

	if err := s.assets.Delete(c.Context(), principal(c), assetID); err != nil {
		return respondError(c, s.log, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) getPositions(c *fiber.Ctx) error {
	date, err := parseOptionalDate(c.Query("data"))
	if err != nil {
		return badRequest(c, "invalid date")
	}

	positions, err := s.assets.Positions(c.Context(), date)
	if err != nil {
		return respondError(c, s.log, err)
	}

	out := make([]positionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, positionResponse{
			AssetName:   p.AssetName,
			AssetType:   string(p.AssetType),
			Quantity:    p.Quantity,
			MarketValue: p.MarketValue,
			Income:      p.Income,
			Profit:      p.Profit,
		})
	}
	return c.JSON(out)
}

func (s *Server) includeMarketPrice(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	var req marketPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return badRequest(c, "invalid date")
		}
		date = &parsed
	}

	asset, err := s.assets.IncludeMarketPrice(c.Context(), assetID, req.Price, date)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssetResponse(asset))
}

func (s *Server) excludeMarketPrice(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	date, err := parseDate(c.Query("data"))
	if err != nil {
		return badRequest(c, "invalid date")
	}

	asset, err := s.assets.ExcludeMarketPrice(c.Context(), assetID, date)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.JSON(toAssetResponse(asset))
}

func (s *Server) getMovements(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	begin, err := parseDate(c.Query("dataInicio"))
	if err != nil {
		return badRequest(c, "invalid dataInicio")
	}
	end, err := parseDate(c.Query("dataFim"))
	if err != nil {
		return badRequest(c, "invalid dataFim")
	}

	movements, err := s.assets.Movements(c.Context(), assetID, begin, end)
	if err != nil {
		return respondError(c, s.log, err)
	}

	out := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

func (s *Server) includeMovement(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	movement, err := parseMovement(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	asset, err := s.trading.BuyOrSell(c.Context(), principal(c), assetID, movement)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssetResponse(asset))
}

func (s *Server) movementBuy(c *fiber.Ctx) error {
	return s.movementByName(c, domain.MovementTypeBuy)
}

func (s *Server) movementSell(c *fiber.Ctx) error {
	return s.movementByName(c, domain.MovementTypeSell)
}

// movementByName executes a buy or sell against the asset named in the
// request body; the movement type comes from the route, overriding the body.
func (s *Server) movementByName(c *fiber.Ctx, typ domain.MovementType) error {
	var req movementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "invalid date")
	}

	movement := &domain.AssetMovement{
		Type:     typ,
		Quantity: req.Quantity,
		Value:    req.Value,
		Date:     date,
	}
	asset, err := s.trading.BuyOrSellByName(c.Context(), principal(c), req.Asset, movement)
	if err != nil {
		return respondError(c, s.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssetResponse(asset))
}

func parseMovement(c *fiber.Ctx) (*domain.AssetMovement, error) {
	var req movementRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errInvalidBody
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, errInvalidDate
	}
	return &domain.AssetMovement{
		Type:     req.Type,
		Quantity: req.Quantity,
		Value:    req.Value,
		Date:     date,
	}, nil
}
