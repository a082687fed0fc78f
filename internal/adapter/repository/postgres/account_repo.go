package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/finledger-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves an account with its launches in insertion order
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	q := r.db.querier(ctx)

	query := `
		SELECT id, balance
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	var balanceStr string

	err := q.QueryRowContext(ctx, query, id).Scan(&account.ID, &balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "account", Ref: id.String()}
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	launches, err := r.launchesByAccount(ctx, q, id)
	if err != nil {
		return nil, err
	}
	account.Launches = launches

	return &account, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, balance)
		VALUES ($1, $2)
	`

	_, err := r.db.querier(ctx).ExecContext(ctx, query,
		account.ID,
		account.Balance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// AppendLaunch persists a launch already attached to its account
func (r *accountRepository) AppendLaunch(ctx context.Context, launch *domain.Launch) error {
	query := `
		INSERT INTO launches (id, account_id, launch_type, description, value, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.querier(ctx).ExecContext(ctx, query,
		launch.ID,
		launch.AccountID,
		string(launch.Type),
		launch.Description,
		launch.Value.String(),
		launch.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to append launch: %w", err)
	}
	return nil
}

func (r *accountRepository) launchesByAccount(ctx context.Context, q querier, accountID uuid.UUID) ([]domain.Launch, error) {
	query := `
		SELECT id, account_id, launch_type, description, value, date
		FROM launches
		WHERE account_id = $1
		ORDER BY seq
	`

	rows, err := q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	defer rows.Close()

	launches := make([]domain.Launch, 0)
	for rows.Next() {
		var launch domain.Launch
		var valueStr string

		if err := rows.Scan(
			&launch.ID,
			&launch.AccountID,
			&launch.Type,
			&launch.Description,
			&valueStr,
			&launch.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse launch value: %w", err)
		}
		launch.Value = value

		launches = append(launches, launch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate launches: %w", err)
	}
	return launches, nil
}
