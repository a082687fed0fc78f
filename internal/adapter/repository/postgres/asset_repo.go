package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/finledger-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// GetByID retrieves an asset with its movements and market prices
func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	return r.getOne(ctx, "id = $1", id, id.String())
}

// GetByName retrieves an asset by its unique name
func (r *assetRepository) GetByName(ctx context.Context, name string) (*domain.Asset, error) {
	return r.getOne(ctx, "name = $1", name, name)
}

func (r *assetRepository) getOne(ctx context.Context, where string, arg interface{}, ref string) (*domain.Asset, error) {
	q := r.db.querier(ctx)

	query := fmt.Sprintf(`
		SELECT id, name, asset_type, issue_date, due_date
		FROM assets
		WHERE %s
	`, where)

	var asset domain.Asset
	err := q.QueryRowContext(ctx, query, arg).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Type,
		&asset.IssueDate,
		&asset.DueDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "asset", Ref: ref}
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	if err := r.loadChildren(ctx, q, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// List retrieves all assets with their movements and market prices
func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	q := r.db.querier(ctx)

	query := `
		SELECT id, name, asset_type, issue_date, due_date
		FROM assets
		ORDER BY name
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.Type,
			&asset.IssueDate,
			&asset.DueDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, &asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	for _, asset := range assets {
		if err := r.loadChildren(ctx, q, asset); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

// Create persists the asset together with any movements and market prices
// already attached to the aggregate
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	q := r.db.querier(ctx)

	query := `
		INSERT INTO assets (id, name, asset_type, issue_date, due_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.ExecContext(ctx, query,
		asset.ID,
		asset.Name,
		string(asset.Type),
		asset.IssueDate,
		asset.DueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	for i := range asset.Movements {
		if err := r.AppendMovement(ctx, &asset.Movements[i]); err != nil {
			return err
		}
	}
	for i := range asset.MarketPrices {
		if err := r.AppendMarketPrice(ctx, &asset.MarketPrices[i]); err != nil {
			return err
		}
	}
	return nil
}

// Update persists changes to the asset's name and type
func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET name = $2, asset_type = $3
		WHERE id = $1
	`

	result, err := r.db.querier(ctx).ExecContext(ctx, query,
		asset.ID,
		asset.Name,
		string(asset.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "asset", Ref: asset.ID.String()}
	}
	return nil
}

// Delete removes the asset; movements and market prices cascade
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM assets WHERE id = $1`

	result, err := r.db.querier(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "asset", Ref: id.String()}
	}
	return nil
}

// AppendMovement persists a movement already attached to its asset
func (r *assetRepository) AppendMovement(ctx context.Context, movement *domain.AssetMovement) error {
	query := `
		INSERT INTO asset_movements (id, asset_id, movement_type, quantity, value, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.querier(ctx).ExecContext(ctx, query,
		movement.ID,
		movement.AssetID,
		string(movement.Type),
		movement.Quantity.String(),
		movement.Value.String(),
		movement.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}
	return nil
}

// AppendMarketPrice persists a market price point
func (r *assetRepository) AppendMarketPrice(ctx context.Context, price *domain.MarketPrice) error {
	query := `
		INSERT INTO market_prices (id, asset_id, price, date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.querier(ctx).ExecContext(ctx, query,
		price.ID,
		price.AssetID,
		price.Price.String(),
		price.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to append market price: %w", err)
	}
	return nil
}

// DeleteMarketPrices removes every price point of the asset on the date
func (r *assetRepository) DeleteMarketPrices(ctx context.Context, assetID uuid.UUID, date time.Time) error {
	query := `DELETE FROM market_prices WHERE asset_id = $1 AND date = $2`

	_, err := r.db.querier(ctx).ExecContext(ctx, query, assetID, date)
	if err != nil {
		return fmt.Errorf("failed to delete market prices: %w", err)
	}
	return nil
}

func (r *assetRepository) loadChildren(ctx context.Context, q querier, asset *domain.Asset) error {
	movements, err := r.movementsByAsset(ctx, q, asset.ID)
	if err != nil {
		return err
	}
	asset.Movements = movements

	prices, err := r.marketPricesByAsset(ctx, q, asset.ID)
	if err != nil {
		return err
	}
	asset.MarketPrices = prices
	return nil
}

func (r *assetRepository) movementsByAsset(ctx context.Context, q querier, assetID uuid.UUID) ([]domain.AssetMovement, error) {
	query := `
		SELECT id, asset_id, movement_type, quantity, value, date
		FROM asset_movements
		WHERE asset_id = $1
		ORDER BY seq
	`

	rows, err := q.QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.AssetMovement, 0)
	for rows.Next() {
		var movement domain.AssetMovement
		var quantityStr, valueStr string

		if err := rows.Scan(
			&movement.ID,
			&movement.AssetID,
			&movement.Type,
			&quantityStr,
			&valueStr,
			&movement.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}

		quantity, err := decimal.NewFromString(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse movement quantity: %w", err)
		}
		movement.Quantity = quantity

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse movement value: %w", err)
		}
		movement.Value = value

		movements = append(movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}
	return movements, nil
}

func (r *assetRepository) marketPricesByAsset(ctx context.Context, q querier, assetID uuid.UUID) ([]domain.MarketPrice, error) {
	query := `
		SELECT id, asset_id, price, date
		FROM market_prices
		WHERE asset_id = $1
		ORDER BY seq
	`

	rows, err := q.QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list market prices: %w", err)
	}
	defer rows.Close()

	prices := make([]domain.MarketPrice, 0)
	for rows.Next() {
		var price domain.MarketPrice
		var priceStr string

		if err := rows.Scan(
			&price.ID,
			&price.AssetID,
			&priceStr,
			&price.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan market price: %w", err)
		}

		value, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse market price: %w", err)
		}
		price.Price = value

		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate market prices: %w", err)
	}
	return prices, nil
}
