package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountRepository defines the persistence port for the account aggregate.
// Loaded accounts carry their full launch history in insertion order.
type AccountRepository interface {
	// GetByID retrieves an account with its launches. Returns a
	// NotFoundError when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *Account) error

	// AppendLaunch persists a launch already validated and attached to its
	// account by the aggregate.
	AppendLaunch(ctx context.Context, launch *Launch) error
}

// AssetRepository defines the persistence port for the asset aggregate.
// Loaded assets carry movements and market prices in insertion order.
type AssetRepository interface {
	// GetByID retrieves an asset with its movements and prices. Returns a
	// NotFoundError when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// GetByName retrieves an asset by its unique name.
	GetByName(ctx context.Context, name string) (*Asset, error)

	// List retrieves all assets, with children loaded.
	List(ctx context.Context) ([]*Asset, error)

	// Create persists a new asset.
	Create(ctx context.Context, asset *Asset) error

	// Update persists changes to the asset's name and type.
	Update(ctx context.Context, asset *Asset) error

	// Delete removes the asset and, cascading, its movements and prices.
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendMovement persists a movement already validated and attached to
	// its asset by the aggregate.
	AppendMovement(ctx context.Context, movement *AssetMovement) error

	// AppendMarketPrice persists a market price point.
	AppendMarketPrice(ctx context.Context, price *MarketPrice) error

	// DeleteMarketPrices removes every price point of the asset dated
	// exactly on the given date.
	DeleteMarketPrices(ctx context.Context, assetID uuid.UUID, date time.Time) error
}

// UserRepository defines the persistence port for users.
type UserRepository interface {
	// GetByUsername retrieves a user by its unique username. Returns a
	// NotFoundError when the username is unknown.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new user.
	Create(ctx context.Context, user *User) error
}

// TxRunner runs a unit of work inside one storage transaction. Repository
// calls made with the context passed to fn join that transaction; if fn
// returns an error the whole unit is rolled back.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}
