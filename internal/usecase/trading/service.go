package trading

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/finledger-backend/internal/domain"
)

// Service orchestrates a buy or sell: the movement is validated and appended
// to the asset, and the cash launch it generates is validated and appended
// to the principal's account, inside one storage transaction. Either both
// mutations commit or neither does.
type Service struct {
	Accounts domain.AccountRepository
	Assets   domain.AssetRepository
	Tx       domain.TxRunner

	// now is the clock used for the sell-availability check; overridable
	// in tests.
	now func() time.Time
}

// NewService creates a new trading Service instance.
func NewService(accounts domain.AccountRepository, assets domain.AssetRepository, tx domain.TxRunner) *Service {
	return &Service{
		Accounts: accounts,
		Assets:   assets,
		Tx:       tx,
		now:      time.Now,
	}
}

// BuyOrSell applies the movement against the asset with the given id. See
// buyOrSell for the rules.
func (s *Service) BuyOrSell(ctx context.Context, principal domain.Principal, assetID uuid.UUID, movement *domain.AssetMovement) (*domain.Asset, error) {
	return s.buyOrSell(ctx, principal, movement, func(ctx context.Context) (*domain.Asset, error) {
		return s.Assets.GetByID(ctx, assetID)
	})
}

// BuyOrSellByName applies the movement against the asset with the given
// unique name.
func (s *Service) BuyOrSellByName(ctx context.Context, principal domain.Principal, assetName string, movement *domain.AssetMovement) (*domain.Asset, error) {
	return s.buyOrSell(ctx, principal, movement, func(ctx context.Context) (*domain.Asset, error) {
		return s.Assets.GetByName(ctx, assetName)
	})
}

// buyOrSell runs the two-aggregate mutation. Administrators may never
// originate movements. The cash launch is applied first, then the asset
// movement (the established ordering); a failure at any step rolls the
// whole unit back. Consult movements run the full path but translate to no
// launch and are never appended, so they read without mutating.
func (s *Service) buyOrSell(ctx context.Context, principal domain.Principal, movement *domain.AssetMovement, load func(ctx context.Context) (*domain.Asset, error)) (*domain.Asset, error) {
	if principal.Admin {
		return nil, domain.ErrUnauthorized
	}

	launch := domain.LaunchForMovement(movement)
	if movement != nil && movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}

	var asset *domain.Asset
	err := s.Tx.Within(ctx, func(ctx context.Context) error {
		account, err := s.Accounts.GetByID(ctx, principal.AccountID)
		if err != nil {
			return err
		}
		asset, err = load(ctx)
		if err != nil {
			return err
		}

		if launch != nil {
			if err := account.IncludeLaunch(launch); err != nil {
				return err
			}
			if err := s.Accounts.AppendLaunch(ctx, launch); err != nil {
				return err
			}
		}

		before := len(asset.Movements)
		if err := asset.IncludeMovement(movement, s.now()); err != nil {
			return err
		}
		if len(asset.Movements) > before {
			if err := s.Assets.AppendMovement(ctx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}
