package services

import (
	"errors"
	"fmt"

	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost, production'da kullanılan bcrypt cost değeri.
const DefaultBcryptCost = 12

// PasswordHasher, şifre hash'leme ve doğrulama için interface.
// AuthService bcrypt'i doğrudan çağırmaz: testte düşük cost'lu hasher verilir.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher, constructor. cost bcrypt sınırları dışındaysa
// DefaultBcryptCost kullanılır.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash, salt'lı bcrypt hash üretir. Aynı şifre iki kez hash'lenince farklı sonuç çıkar.
//
// 72 byte'tan uzun şifre sessizce kırpılmaz, validation hatası döner.
func (h *bcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", pkg.NewError(pkg.ErrBadRequest, models.MsgPasswordTooLong)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify, bcrypt.CompareHashAndPassword ile constant-time karşılaştırma yapar.
// Bozuk hash de false döner.
func (h *bcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
