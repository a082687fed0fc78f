package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/finledger-backend/internal/domain"
)

// Service handles cash-account operations: launch inclusion and the
// point-in-time balance and launch queries.
type Service struct {
	Accounts domain.AccountRepository
}

// NewService creates a new account Service instance.
func NewService(accounts domain.AccountRepository) *Service {
	return &Service{Accounts: accounts}
}

// FindByID retrieves an account with its full launch history.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.Accounts.GetByID(ctx, id)
}

// Create opens a new account with the given base balance.
func (s *Service) Create(ctx context.Context, baseBalance decimal.Decimal) (*domain.Account, error) {
	account := &domain.Account{
		ID:      uuid.New(),
		Balance: domain.TruncateAmount(baseBalance),
	}
	if err := s.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// IncludeLaunch validates and appends a launch to the account.
// Administrators may never originate launches. A nil launch is tolerated and
// returns the unchanged account.
func (s *Service) IncludeLaunch(ctx context.Context, principal domain.Principal, accountID uuid.UUID, launch *domain.Launch) (*domain.Account, error) {
	if principal.Admin {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if launch == nil {
		return account, nil
	}
	if launch.ID == uuid.Nil {
		launch.ID = uuid.New()
	}

	if err := account.IncludeLaunch(launch); err != nil {
		return nil, err
	}
	if err := s.Accounts.AppendLaunch(ctx, launch); err != nil {
		return nil, err
	}
	return account, nil
}

// Balance returns the account balance as of the given date. An absent date
// yields zero, not the base balance; existing consumers depend on this.
func (s *Service) Balance(ctx context.Context, accountID uuid.UUID, date *time.Time) (decimal.Decimal, error) {
	if date == nil {
		return domain.ZeroAmount(), nil
	}

	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.BalanceOn(*date), nil
}

// Launches returns the account's launches dated within [begin, end], both
// ends inclusive, in insertion order.
func (s *Service) Launches(ctx context.Context, accountID uuid.UUID, begin, end time.Time) ([]domain.Launch, error) {
	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.LaunchesBetween(begin, end), nil
}
