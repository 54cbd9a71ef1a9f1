package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/kushauth/database"
	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation, PostgreSQL unique_violation SQLSTATE kodu.
const pgUniqueViolation = "23505"

// postgresAccountRepo, AccountRepository'nin PostgreSQL implementasyonu.
// SQLite versiyonuyla aynı davranış: farklar: $n placeholder'ları ve
// unique violation'ın pgconn.PgError üzerinden tespiti.
type postgresAccountRepo struct {
	db database.TxQuerier
}

// NewPostgresAccountRepo, constructor.
func NewPostgresAccountRepo(db database.TxQuerier) AccountRepository {
	return &postgresAccountRepo{db: db}
}

const postgresAccountColumns = `id, full_name, email, password_hash, created_at, last_login_at, login_count`

func (r *postgresAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.Email = models.NormalizeEmail(account.Email)

	query := `
		INSERT INTO accounts (id, full_name, email, password_hash, created_at, last_login_at, login_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.FullName,
		account.Email,
		account.PasswordHash,
		account.CreatedAt.UTC(),
		nullTime(account.LastLoginAt),
		account.LoginCount,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return pkg.NewError(pkg.ErrConflict, models.MsgAccountExists)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *postgresAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// GetByEmail, lower(email) üzerinden arar: unique index de lower(email) üzerinde.
func (r *postgresAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + postgresAccountColumns + ` FROM accounts WHERE lower(email) = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, models.NormalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *postgresAccountRepo) Save(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts SET full_name = $1, last_login_at = $2, login_count = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		account.FullName, nullTime(account.LastLoginAt), account.LoginCount, account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
