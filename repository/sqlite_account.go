package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/kushauth/database"
	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"github.com/google/uuid"
)

// sqliteAccountRepo, AccountRepository interface'inin SQLite implementasyonu.
type sqliteAccountRepo struct {
	db database.TxQuerier
}

// NewSQLiteAccountRepo, constructor fonksiyonu.
// AccountRepository interface'i döner (concrete struct değil): Dependency Inversion.
func NewSQLiteAccountRepo(db database.TxQuerier) AccountRepository {
	return &sqliteAccountRepo{db: db}
}

const sqliteAccountColumns = `id, full_name, email, password_hash, created_at, last_login_at, login_count`

func (r *sqliteAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.Email = models.NormalizeEmail(account.Email)

	query := `
		INSERT INTO accounts (id, full_name, email, password_hash, created_at, last_login_at, login_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

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
		// UNIQUE constraint violation → email zaten kayıtlı
		if isSQLiteUniqueViolation(err) {
			return pkg.NewError(pkg.ErrConflict, models.MsgAccountExists)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *sqliteAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + sqliteAccountColumns + ` FROM accounts WHERE id = ?`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *sqliteAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + sqliteAccountColumns + ` FROM accounts WHERE email = ?`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, models.NormalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *sqliteAccountRepo) Save(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts SET full_name = ?, last_login_at = ?, login_count = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		account.FullName, nullTime(account.LastLoginAt), account.LoginCount, account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	// RowsAffected: 0 ise hesap bulunamadı.
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan method'u.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount, SELECT sırası sqliteAccountColumns / postgresAccountColumns ile aynı olmalı.
func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var lastLogin sql.NullTime

	if err := row.Scan(
		&a.ID, &a.FullName, &a.Email, &a.PasswordHash,
		&a.CreatedAt, &lastLogin, &a.LoginCount,
	); err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLoginAt = &t
	}
	return a, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// isSQLiteUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
// modernc driver error code'u string mesajda taşır.
func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
