package httpapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/finledger-backend/internal/domain"
)

// dateLayout is the wire format for every date crossing the API boundary.
const dateLayout = "2006-01-02"

type launchRequest struct {
	Type        domain.LaunchType `json:"tipo"`
	Description string            `json:"descricao"`
	Value       decimal.Decimal   `json:"valor"`
	Date        string            `json:"data"`
}

type launchResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"tipo"`
	Description string          `json:"descricao"`
	Value       decimal.Decimal `json:"valor"`
	Date        string          `json:"data"`
}

type accountResponse struct {
	ID       string           `json:"id"`
	Balance  decimal.Decimal  `json:"saldo"`
	Launches []launchResponse `json:"lancamentos"`
}

type createAccountRequest struct {
	Balance decimal.Decimal `json:"saldo"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"saldo"`
}

type assetRequest struct {
	Name      string           `json:"name"`
	Type      domain.AssetType `json:"type"`
	IssueDate string           `json:"issueDate"`
	DueDate   string           `json:"dueDate"`
}

type assetResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate"`
}

type positionResponse struct {
	AssetName   string          `json:"nomeAtivo"`
	AssetType   string          `json:"tipoAtivo"`
	Quantity    decimal.Decimal `json:"quantidadeTotal"`
	MarketValue decimal.Decimal `json:"valorMercadoTotal"`
	Income      decimal.Decimal `json:"rendimento"`
	Profit      decimal.Decimal `json:"lucro"`
}

type movementRequest struct {
	Type     domain.MovementType `json:"tipo"`
	Quantity decimal.Decimal     `json:"quantidade"`
	Value    decimal.Decimal     `json:"valor"`
	Date     string              `json:"data"`
	Asset    string              `json:"ativo"`
}

type movementResponse struct {
	ID       string          `json:"id"`
	Type     string          `json:"tipo"`
	Quantity decimal.Decimal `json:"quantidade"`
	Value    decimal.Decimal `json:"valor"`
	Date     string          `json:"data"`
}

type marketPriceRequest struct {
	Price *decimal.Decimal `json:"valor"`
	Date  *string          `json:"data"`
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return date, nil
}

// parseOptionalDate maps an absent query value to nil, preserving the
// nil-date semantics of the balance and position queries.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func toAccountResponse(account *domain.Account) accountResponse {
	launches := make([]launchResponse, 0, len(account.Launches))
	for _, l := range account.Launches {
		launches = append(launches, toLaunchResponse(l))
	}
	return accountResponse{
		ID:       account.ID.String(),
		Balance:  account.Balance,
		Launches: launches,
	}
}

func toLaunchResponse(l domain.Launch) launchResponse {
	return launchResponse{
		ID:          l.ID.String(),
		Type:        string(l.Type),
		Description: l.Description,
		Value:       l.Value,
		Date:        l.Date.Format(dateLayout),
	}
}

func toAssetResponse(asset *domain.Asset) assetResponse {
	return assetResponse{
		ID:        asset.ID.String(),
		Name:      asset.Name,
		Type:      string(asset.Type),
		IssueDate: asset.IssueDate.Format(dateLayout),
		DueDate:   asset.DueDate.Format(dateLayout),
	}
}

func toMovementResponse(m domain.AssetMovement) movementResponse {
	return movementResponse{
		ID:       m.ID.String(),
		Type:     string(m.Type),
		Quantity: m.Quantity,
		Value:    m.Value,
		Date:     m.Date.Format(dateLayout),
	}
}
