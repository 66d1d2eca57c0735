package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/coinbank/internal/domain"
	"github.com/iho/coinbank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT id, display_name, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// Exists reports whether an account with the given ID exists.
func (r *AccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// CreateIfAbsent inserts the account unless the ID is already taken.
// The unique constraint on id arbitrates concurrent creators; the loser
// reads back the winner's row and reports created=false.
func (r *AccountRepository) CreateIfAbsent(ctx context.Context, account *domain.Account) (*domain.Account, bool, error) {
	query := `
		INSERT INTO accounts (id, display_name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
		RETURNING id, display_name, balance, created_at, updated_at
	`

	inserted, err := scanAccount(r.pool.QueryRow(ctx, query,
		account.ID,
		account.DisplayName,
		decimalToNumeric(account.Balance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	))

	if err == nil {
		return inserted, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.GetByID(ctx, account.ID)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

// DebitBalance decrements the balance inside tx only when the account
// can cover the amount. The WHERE clause makes the check and the write
// one atomic statement; no row means insufficient funds.
func (r *AccountRepository) DebitBalance(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = $3
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance pgtype.Numeric
	err := pgxTx.QueryRow(ctx, query, id, decimalToNumeric(amount), timeToPgTimestamptz(at)).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, domain.ErrInsufficientFunds
		}

		return decimal.Decimal{}, err
	}

	return numericToDecimal(balance), nil
}

// CreditBalance increments the balance inside tx and returns the new
// balance.
func (r *AccountRepository) CreditBalance(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1
		RETURNING balance
	`

	var balance pgtype.Numeric
	err := pgxTx.QueryRow(ctx, query, id, decimalToNumeric(amount), timeToPgTimestamptz(at)).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, domain.ErrAccountNotFound
		}

		return decimal.Decimal{}, err
	}

	return numericToDecimal(balance), nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.DisplayName,
		&balance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
