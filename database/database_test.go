package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesEmbeddedMigrations(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "nested", "auth.db"), SQLiteMigrations())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DriverSQLite, db.Driver)

	var count int
	require.NoError(t, db.Conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='accounts'",
	).Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNew_MigrationsAreAppliedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.db")
	migrations := fstest.MapFS{
		"001_init.sql":  {Data: []byte("CREATE TABLE t (id INTEGER);")},
		"002_alter.sql": {Data: []byte("ALTER TABLE t ADD COLUMN name TEXT;")},
	}

	db, err := New(path, migrations)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// İkinci açılışta ALTER tekrar çalışsaydı "duplicate column" olurdu;
	// schema_migrations sayesinde hiç çalışmaz.
	db, err = New(path, migrations)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestNew_UnrecordedAlterIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.db")
	migrations := fstest.MapFS{
		"001_init.sql":  {Data: []byte("CREATE TABLE t (id INTEGER);")},
		"002_alter.sql": {Data: []byte("ALTER TABLE t ADD COLUMN name TEXT;\nCREATE INDEX idx_t_name ON t(name);")},
	}

	db, err := New(path, migrations)
	require.NoError(t, err)
	// Kolon eklenmiş ama kayıt düşmemiş: yarıda kesilmiş bir çalıştırma.
	_, err = db.Conn.Exec("DELETE FROM schema_migrations WHERE filename = '002_alter.sql'")
	require.NoError(t, err)
	_, err = db.Conn.Exec("DROP INDEX idx_t_name")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	hook := test.NewGlobal()
	defer hook.Reset()

	db, err = New(path, migrations)
	require.NoError(t, err)
	defer db.Close()

	var skipped *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			skipped = e
		}
	}
	require.NotNil(t, skipped)
	assert.Contains(t, skipped.Message, "duplicate column name")
	assert.Equal(t, "002_alter.sql", skipped.Data["file"])
	assert.Equal(t, 1, skipped.Data["statement"])

	// Kalan statement'lar çalıştı ve migration kaydedildi.
	var count int
	require.NoError(t, db.Conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_t_name'",
	).Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestNew_FailingMigrationReturnsError(t *testing.T) {
	migrations := fstest.MapFS{
		"001_broken.sql": {Data: []byte("CREATE TABLEX nope;")},
	}

	_, err := New(filepath.Join(t.TempDir(), "auth.db"), migrations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_broken.sql")
}

func TestSplitStatements(t *testing.T) {
	sql := `
-- yorum; noktalı virgül içerir
CREATE TABLE a (v TEXT DEFAULT 'x;y');
INSERT INTO a VALUES ('it''s');
SELECT 1`

	got := splitStatements(sql)
	require.Len(t, got, 3)
	assert.Equal(t, "CREATE TABLE a (v TEXT DEFAULT 'x;y')", got[0])
	assert.Equal(t, "INSERT INTO a VALUES ('it''s')", got[1])
	assert.Equal(t, "SELECT 1", got[2])
}

func TestRunGooseMigrations_PropagatesError(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	err = runGooseMigrations(context.Background(), conn, PostgresMigrations())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, ".", gotDir)
}

func TestRunGooseMigrations_Success(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(context.Context, *sql.DB, string) error { return nil }

	assert.NoError(t, runGooseMigrations(context.Background(), conn, PostgresMigrations()))
}
