package asset

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/finledger-backend/internal/domain"
)

// Position is the computed snapshot of one asset as of a date.
type Position struct {
	AssetName   string
	AssetType   domain.AssetType
	Quantity    decimal.Decimal
	MarketValue decimal.Decimal
	Income      decimal.Decimal
	Profit      decimal.Decimal
}

// Service handles asset management and the point-in-time position queries.
// Asset creation, update and deletion are administrative operations;
// movements belong to the trading service.
type Service struct {
	Assets domain.AssetRepository
}

// NewService creates a new asset Service instance.
func NewService(assets domain.AssetRepository) *Service {
	return &Service{Assets: assets}
}

// FindByID retrieves an asset with its movements and price series.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	return s.Assets.GetByID(ctx, id)
}

// FindAll retrieves every registered asset.
func (s *Service) FindAll(ctx context.Context) ([]*domain.Asset, error) {
	return s.Assets.List(ctx)
}

// Create registers a new asset. Only administrators may create assets, and
// the issue date must be strictly before the due date.
func (s *Service) Create(ctx context.Context, principal domain.Principal, name string, typ domain.AssetType, issueDate, dueDate time.Time) (*domain.Asset, error) {
	if !principal.Admin {
		return nil, domain.ErrUnauthorized
	}

	asset, err := domain.NewAsset(name, typ, issueDate, dueDate)
	if err != nil {
		return nil, err
	}
	if err := s.Assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update changes the asset's name and type. Only administrators may update
// assets; the trading window is fixed at creation.
func (s *Service) Update(ctx context.Context, principal domain.Principal, id uuid.UUID, name string, typ domain.AssetType) (*domain.Asset, error) {
	if !principal.Admin {
		return nil, domain.ErrUnauthorized
	}

	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	asset.Name = name
	asset.Type = typ
	if err := s.Assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes the asset along with its movements and price series. Only
// administrators may delete assets.
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id uuid.UUID) error {
	if !principal.Admin {
		return domain.ErrUnauthorized
	}

	if _, err := s.Assets.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Assets.Delete(ctx, id)
}

// TotalQuantity returns the quantity held as of the given date. An absent
// date yields zero.
func (s *Service) TotalQuantity(ctx context.Context, id uuid.UUID, date *time.Time) (decimal.Decimal, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if date == nil {
		return domain.ZeroAmount(), nil
	}
	return asset.TotalQuantity(*date), nil
}

// TotalMarketValue returns the market value of the held quantity as of the
// given date. An absent date yields zero.
func (s *Service) TotalMarketValue(ctx context.Context, id uuid.UUID, date *time.Time) (decimal.Decimal, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if date == nil {
		return domain.ZeroAmount(), nil
	}
	return asset.TotalMarketValue(*date), nil
}

// Income returns the asset income as of the given date. An absent date
// yields zero.
func (s *Service) Income(ctx context.Context, id uuid.UUID, date *time.Time) (decimal.Decimal, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if date == nil {
		return domain.ZeroAmount(), nil
	}
	return asset.Income(*date), nil
}

// Profit returns the realized profit as of the given date. An absent date
// yields zero.
func (s *Service) Profit(ctx context.Context, id uuid.UUID, date *time.Time) (decimal.Decimal, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if date == nil {
		return domain.ZeroAmount(), nil
	}
	return asset.Profit(*date), nil
}

// Positions returns the position snapshot of every asset as of the given
// date. An absent date yields zero-valued positions.
func (s *Service) Positions(ctx context.Context, date *time.Time) ([]Position, error) {
	assets, err := s.Assets.List(ctx)
	if err != nil {
		return nil, err
	}

	positions := make([]Position, 0, len(assets))
	for _, a := range assets {
		p := Position{
			AssetName:   a.Name,
			AssetType:   a.Type,
			Quantity:    domain.ZeroAmount(),
			MarketValue: domain.ZeroAmount(),
			Income:      domain.ZeroAmount(),
			Profit:      domain.ZeroAmount(),
		}
		if date != nil {
			p.Quantity = a.TotalQuantity(*date)
			p.MarketValue = a.TotalMarketValue(*date)
			p.Income = a.Income(*date)
			p.Profit = a.Profit(*date)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// IncludeMarketPrice appends a price point to the asset's series. A nil
// price or date leaves the series unchanged.
func (s *Service) IncludeMarketPrice(ctx context.Context, id uuid.UUID, price *decimal.Decimal, date *time.Time) (*domain.Asset, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := len(asset.MarketPrices)
	asset.IncludeMarketPrice(price, date)
	if len(asset.MarketPrices) == before {
		return asset, nil
	}

	appended := asset.MarketPrices[len(asset.MarketPrices)-1]
	if err := s.Assets.AppendMarketPrice(ctx, &appended); err != nil {
		return nil, err
	}
	return asset, nil
}

// ExcludeMarketPrice removes every price point of the asset dated exactly
// on the given date.
func (s *Service) ExcludeMarketPrice(ctx context.Context, id uuid.UUID, date time.Time) (*domain.Asset, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	asset.ExcludeMarketPrice(date)
	if err := s.Assets.DeleteMarketPrices(ctx, id, date); err != nil {
		return nil, err
	}
	return asset, nil
}

// Movements returns the asset's movements dated within [begin, end], both
// ends inclusive, in insertion order.
func (s *Service) Movements(ctx context.Context, id uuid.UUID, begin, end time.Time) ([]domain.AssetMovement, error) {
	asset, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return asset.MovementsBetween(begin, end), nil
}
