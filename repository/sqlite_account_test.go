package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/kushauth/database"
	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) AccountRepository {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "accounts.db"), database.SQLiteMigrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteAccountRepo(db.Conn)
}

func newAccount(email string) *models.Account {
	return &models.Account{
		FullName:     "Ada",
		Email:        email,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestSQLiteAccountRepo_CreateAndGet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	acc := newAccount("Ada@X.com")
	require.NoError(t, repo.Create(ctx, acc))
	require.NotEmpty(t, acc.ID)
	assert.Equal(t, "ada@x.com", acc.Email)

	byEmail, err := repo.GetByEmail(ctx, "  ADA@x.COM ")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byEmail.ID)
	assert.Equal(t, "Ada", byEmail.FullName)
	assert.Equal(t, "$2a$04$hash", byEmail.PasswordHash)
	assert.WithinDuration(t, acc.CreatedAt, byEmail.CreatedAt, time.Millisecond)
	assert.Nil(t, byEmail.LastLoginAt)

	byID, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", byID.Email)
}

func TestSQLiteAccountRepo_NotFound(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	err = repo.Save(ctx, &models.Account{ID: "missing"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestSQLiteAccountRepo_DuplicateEmailIsConflict(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newAccount("ada@x.com")))

	err := repo.Create(ctx, newAccount("ADA@X.COM"))
	require.ErrorIs(t, err, pkg.ErrConflict)

	var apiErr *pkg.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.MsgAccountExists, apiErr.Message)
}

func TestSQLiteAccountRepo_ConcurrentCreateExactlyOneWins(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newAccount("race@x.com"))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, pkg.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestSQLiteAccountRepo_SavePersistsLoginFields(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	acc := newAccount("ada@x.com")
	require.NoError(t, repo.Create(ctx, acc))

	login := acc.CreatedAt.Add(time.Minute)
	acc.LastLoginAt = &login
	acc.LoginCount = 3
	require.NoError(t, repo.Save(ctx, acc))

	got, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, login, *got.LastLoginAt, time.Millisecond)
	assert.Equal(t, 3, got.LoginCount)
}
