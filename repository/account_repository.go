// Package repository, credential store erişim katmanını tanımlar.
//
// Repository Pattern nedir?
// Veritabanı işlemlerini (CRUD) soyutlayan bir tasarım kalıbıdır.
// Service katmanı doğrudan SQL yazmaz: repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: fake repository yazarak DB olmadan service test edilebilir
// 2. Esneklik: SQLite ve PostgreSQL implementasyonları aynı interface'i karşılar
// 3. Dependency Inversion: service, concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/akinalp/kushauth/models"
)

// AccountRepository, hesap veritabanı işlemleri için interface.
//
// Email parametreleri implementasyon içinde de normalize edilir,
// çağıran taraf "Ada@X.com" gönderse bile "ada@x.com" ile eşleşir.
type AccountRepository interface {
	// Create, yeni hesabı ekler. account.ID boşsa UUID atanır.
	// Email zaten kayıtlıysa pkg.ErrConflict döner (DB unique constraint'i: atomik).
	Create(ctx context.Context, account *models.Account) error
	// GetByID, yoksa pkg.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetByEmail, yoksa pkg.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// Save, mutable alanları (full_name, last_login_at, login_count) yazar.
	// Satır yoksa pkg.ErrNotFound.
	Save(ctx context.Context, account *models.Account) error
}
