package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer, token'ların "iss" claim'i.
const TokenIssuer = "kushauth"

// Token doğrulama hataları. Üçü de pkg.ErrUnauthorized'ı sarar,
// middleware hepsini 401 olarak reddeder, mesajı ise türe göre seçer.
var (
	ErrInvalidToken   = fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	ErrExpiredToken   = fmt.Errorf("%w: token expired", pkg.ErrUnauthorized)
	ErrMalformedToken = fmt.Errorf("%w: malformed token", pkg.ErrUnauthorized)
)

// TokenService, session token üretimi ve doğrulaması.
type TokenService interface {
	// Issue, subject (account ID) için imzalı token üretir.
	Issue(subjectID string) (string, error)
	// Verify, token geçerliyse subject'i döner.
	Verify(token string) (string, error)
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService, HS256 JWT tabanlı TokenService oluşturur.
// Boş secret ile token imzalamak güvensizdir: startup hatası olarak döner.
func NewTokenService(secret string, ttl time.Duration) (TokenService, error) {
	return newTokenService(secret, ttl, time.Now)
}

func newTokenService(secret string, ttl time.Duration, now func() time.Time) (*jwtTokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &jwtTokenService{secret: []byte(secret), ttl: ttl, now: now}, nil
}

func (s *jwtTokenService) Issue(subjectID string) (string, error) {
	now := s.now()
	claims := models.TokenClaims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify, imzayı, algoritmayı (sadece HMAC), issuer'ı ve süreyi kontrol eder.
//
// jwt kütüphanesinin hataları üç türe indirgenir:
//   - ErrTokenMalformed → ErrMalformedToken
//   - ErrTokenExpired   → ErrExpiredToken
//   - diğer her şey     → ErrInvalidToken
func (s *jwtTokenService) Verify(tokenString string) (string, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpiredToken
		default:
			return "", ErrInvalidToken
		}
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.UserID
	}
	if subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
