package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/finledger/finledger-backend/internal/domain"
)

// Pre-registered fixtures expected by the provisioned environment: ten
// regular users plus the administrative root user, and 128 assets with a
// market value on 2020-01-02.
const (
	regularUserCount = 10
	assetCount       = 128

	adminUsername = "root"
	adminPassword = "spiderman"
)

// Seeder provisions the pre-registered users, accounts and assets. Seeding
// is idempotent: it skips entities that already exist.
type Seeder struct {
	Users    domain.UserRepository
	Accounts domain.AccountRepository
	Assets   domain.AssetRepository
}

// NewSeeder creates a new Seeder instance.
func NewSeeder(users domain.UserRepository, accounts domain.AccountRepository, assets domain.AssetRepository) *Seeder {
	return &Seeder{Users: users, Accounts: accounts, Assets: assets}
}

// Seed ensures all pre-registered users and assets exist.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedUser(ctx, adminUsername, adminPassword, domain.RoleAdmin, decimal.NewFromFloat(100.00)); err != nil {
		return err
	}
	for i := 0; i < regularUserCount; i++ {
		username := fmt.Sprintf("usuario%d", i)
		password := fmt.Sprintf("senha%d", i)
		if err := s.seedUser(ctx, username, password, domain.RoleUser, domain.ZeroAmount()); err != nil {
			return err
		}
	}

	for i := 0; i < assetCount; i++ {
		if err := s.seedAsset(ctx, fmt.Sprintf("ATIVO%d", i)); err != nil {
			return err
		}
	}
	return nil
}

// seedUser creates the user together with its cash account unless the
// username is already registered.
func (s *Seeder) seedUser(ctx context.Context, username, password string, role domain.Role, baseBalance decimal.Decimal) error {
	_, err := s.Users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account := &domain.Account{
		ID:      uuid.New(),
		Balance: domain.TruncateAmount(baseBalance),
	}
	if err := s.Accounts.Create(ctx, account); err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		AccountID:    account.ID,
	}
	return s.Users.Create(ctx, user)
}

// seedAsset creates the asset with its 2020 trading window and the opening
// market value of 10.00 on 2020-01-02, unless the name is already taken.
func (s *Seeder) seedAsset(ctx context.Context, name string) error {
	_, err := s.Assets.GetByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	asset, err := domain.NewAsset(name, domain.AssetTypeRF,
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return err
	}

	price := decimal.NewFromFloat(10.00)
	date := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)
	asset.IncludeMarketPrice(&price, &date)

	return s.Assets.Create(ctx, asset)
}
