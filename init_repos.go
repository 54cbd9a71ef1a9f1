// Package main: Database + Repository katmanı başlatma.
//
// openDatabase, DATABASE_DRIVER'a göre SQLite veya PostgreSQL bağlantısı açar.
// initRepositories, driver'a uygun repository implementasyonunu seçer.
package main

import (
	"context"
	"fmt"

	"github.com/akinalp/kushauth/config"
	"github.com/akinalp/kushauth/database"
	"github.com/akinalp/kushauth/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	Account repository.AccountRepository
}

// openDatabase, bağlantıyı açar ve embedded migration'ları uygular.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	switch cfg.Database.Driver {
	case database.DriverPostgres:
		return database.NewPostgres(ctx, cfg.Database.URL, database.PostgresMigrations())
	case database.DriverSQLite:
		return database.New(cfg.Database.Path, database.SQLiteMigrations())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// initRepositories, DB driver'ına göre repository'leri oluşturur.
func initRepositories(db *database.DB) *Repositories {
	if db.Driver == database.DriverPostgres {
		return &Repositories{Account: repository.NewPostgresAccountRepo(db.Conn)}
	}
	return &Repositories{Account: repository.NewSQLiteAccountRepo(db.Conn)}
}
