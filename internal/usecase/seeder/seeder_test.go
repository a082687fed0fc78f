package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finledger/finledger-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) AppendLaunch(ctx context.Context, launch *domain.Launch) error {
	args := m.Called(ctx, launch)
	return args.Error(0)
}

// MockAssetRepository is a mock implementation of domain.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetByName(ctx context.Context, name string) (*domain.Asset, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) AppendMovement(ctx context.Context, movement *domain.AssetMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockAssetRepository) AppendMarketPrice(ctx context.Context, price *domain.MarketPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockAssetRepository) DeleteMarketPrices(ctx context.Context, assetID uuid.UUID, date time.Time) error {
	args := m.Called(ctx, assetID, date)
	return args.Error(0)
}

func notFound(entity, ref string) error {
	return &domain.NotFoundError{Entity: entity, Ref: ref}
}

func TestSeed_ProvisionsUsersAndAssets(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	accounts := new(MockAccountRepository)
	assets := new(MockAssetRepository)
	s := NewSeeder(users, accounts, assets)

	users.On("GetByUsername", ctx, mock.AnythingOfType("string")).Return(nil, notFound("user", "any"))
	accounts.On("Create", ctx, mock.AnythingOfType("*domain.Account")).Return(nil)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	assets.On("GetByName", ctx, mock.AnythingOfType("string")).Return(nil, notFound("asset", "any"))
	assets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil)

	err := s.Seed(ctx)

	require.NoError(t, err)
	users.AssertNumberOfCalls(t, "Create", 11)
	accounts.AssertNumberOfCalls(t, "Create", 11)
	assets.AssertNumberOfCalls(t, "Create", 128)
}

func TestSeed_RootIsAdminWithOpeningBalance(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	accounts := new(MockAccountRepository)
	assets := new(MockAssetRepository)
	s := NewSeeder(users, accounts, assets)

	var root *domain.User
	var rootAccount *domain.Account
	users.On("GetByUsername", ctx, mock.AnythingOfType("string")).Return(nil, notFound("user", "any"))
	accounts.On("Create", ctx, mock.AnythingOfType("*domain.Account")).Run(func(args mock.Arguments) {
		if rootAccount == nil {
			rootAccount = args.Get(1).(*domain.Account)
		}
	}).Return(nil)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		if u.Username == "root" {
			root = u
		}
	}).Return(nil)
	assets.On("GetByName", ctx, mock.AnythingOfType("string")).Return(nil, notFound("asset", "any"))
	assets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil)

	require.NoError(t, s.Seed(ctx))

	require.NotNil(t, root)
	assert.Equal(t, domain.RoleAdmin, root.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.PasswordHash), []byte("spiderman")))
	require.NotNil(t, rootAccount)
	assert.True(t, rootAccount.Balance.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, rootAccount.ID, root.AccountID)
}

func TestSeed_AssetsCarryWindowAndOpeningPrice(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	accounts := new(MockAccountRepository)
	assets := new(MockAssetRepository)
	s := NewSeeder(users, accounts, assets)

	users.On("GetByUsername", ctx, mock.AnythingOfType("string")).Return(&domain.User{}, nil)

	var first *domain.Asset
	assets.On("GetByName", ctx, mock.AnythingOfType("string")).Return(nil, notFound("asset", "any"))
	assets.On("Create", ctx, mock.AnythingOfType("*domain.Asset")).Run(func(args mock.Arguments) {
		if first == nil {
			first = args.Get(1).(*domain.Asset)
		}
	}).Return(nil)

	require.NoError(t, s.Seed(ctx))

	require.NotNil(t, first)
	assert.Equal(t, "ATIVO0", first.Name)
	assert.Equal(t, domain.AssetTypeRF, first.Type)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), first.IssueDate)
	assert.Equal(t, time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), first.DueDate)
	require.Len(t, first.MarketPrices, 1)
	assert.True(t, first.MarketPrices[0].Price.Equal(decimal.RequireFromString("10")))
	assert.Equal(t, time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC), first.MarketPrices[0].Date)
}

func TestSeed_SkipsExistingEntities(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	accounts := new(MockAccountRepository)
	assets := new(MockAssetRepository)
	s := NewSeeder(users, accounts, assets)

	users.On("GetByUsername", ctx, mock.AnythingOfType("string")).Return(&domain.User{}, nil)
	assets.On("GetByName", ctx, mock.AnythingOfType("string")).Return(&domain.Asset{}, nil)

	err := s.Seed(ctx)

	require.NoError(t, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
