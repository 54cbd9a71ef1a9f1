// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - Session token üretimi
//
// Service ASLA http.Request/Response bilmez: sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz: Repository interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"github.com/akinalp/kushauth/repository"
)

// ErrAccountGone, token geçerli ama sahibi artık yok.
var ErrAccountGone = fmt.Errorf("%w: account no longer exists", pkg.ErrUnauthorized)

// AuthService interface'i: dışarıya açık API.
// Handler ve middleware bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error)
	Signin(ctx context.Context, req *models.SigninRequest) (*AuthResult, error)
	// Authenticate, bearer token'ı doğrular ve sahibini yükler.
	Authenticate(ctx context.Context, token string) (*models.Account, error)
}

// AuthResult, signup/signin sonrası dönen token ve kullanıcı.
type AuthResult struct {
	Token string               `json:"token"`
	User  models.PublicAccount `json:"user"`
}

type authService struct {
	accounts repository.AccountRepository
	hasher   PasswordHasher
	tokens   TokenService
	now      func() time.Time

	// dummyHash, bilinmeyen email'de şifrenin karşılaştırıldığı sabit hash.
	dummyHash string
}

// dummyPassword, dummyHash'in üretildiği şifre; hiçbir hesaba ait değildir.
const dummyPassword = "kushauth-signin-timing"

// NewAuthService, constructor.
func NewAuthService(
	accounts repository.AccountRepository,
	hasher PasswordHasher,
	tokens TokenService,
) AuthService {
	// Hash hatası sadece bozuk hasher'da olur; o durumda Verify boş hash'e karşı false döner.
	dummy, _ := hasher.Hash(dummyPassword)

	return &authService{
		accounts:  accounts,
		hasher:    hasher,
		tokens:    tokens,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Signup, yeni hesap oluşturur ve token döner.
//
// Email ön kontrolü kullanıcıya anlamlı mesaj vermek içindir; eşzamanlı iki
// signup ön kontrolü birlikte geçse bile DB unique constraint'i ikincisini
// pkg.ErrConflict ile reddeder.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, pkg.NewError(pkg.ErrBadRequest, err.Error())
	}

	// 2. Email zaten kayıtlı mı
	_, err := s.accounts.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, pkg.NewError(pkg.ErrConflict, models.MsgAccountExists)
	case !errors.Is(err, pkg.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	// 3. Bcrypt hash
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 4. Account oluştur
	account := &models.Account{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err // ErrConflict olabilir
	}

	// 5. Token
	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: account.Public()}, nil
}

// Signin, email + şifre ile giriş yapar.
//
// Bilinmeyen email ve yanlış şifre aynı hatayı döner: hangi email'lerin
// kayıtlı olduğu dışarıdan anlaşılamaz.
func (s *authService) Signin(ctx context.Context, req *models.SigninRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, pkg.NewError(pkg.ErrBadRequest, err.Error())
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Kayıtlı hesaptaki kadar bcrypt işi yapılır: yanıt süresi email'in varlığını ele vermez.
			s.hasher.Verify(req.Password, s.dummyHash)
			return nil, pkg.NewError(pkg.ErrInvalidCredentials, models.MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		return nil, pkg.NewError(pkg.ErrInvalidCredentials, models.MsgInvalidCredentials)
	}

	// LastLoginAt geri gitmez: saat geri alınsa bile önceki değerin altına düşmez.
	loginAt := s.now().UTC()
	if account.LastLoginAt != nil && loginAt.Before(*account.LastLoginAt) {
		loginAt = *account.LastLoginAt
	}
	if loginAt.Before(account.CreatedAt) {
		loginAt = account.CreatedAt
	}
	account.LastLoginAt = &loginAt
	account.LoginCount++

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: account.Public()}, nil
}

// Authenticate, token'ı doğrular ve hesabı DB'den yükler.
// Token hataları (ErrExpiredToken vb.) olduğu gibi döner; hesap silinmişse ErrAccountGone.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, ErrAccountGone
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return account, nil
}
