// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// "next" parametresi zincirdeki bir sonraki handler'dır.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Eğer hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akinalp/kushauth/handlers"
	"github.com/akinalp/kushauth/pkg"
	"github.com/akinalp/kushauth/services"
)

// 401 mesajları: client bunlara göre login ekranına yönlendirir.
const (
	MsgNoToken      = "Access denied. No token provided."
	MsgTokenExpired = "Token has expired."
	MsgInvalidToken = "Invalid token."
	MsgAccountGone  = "Token is no longer valid. User not found."
)

// AuthMiddleware, bearer token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require, geçerli bir bearer token zorunlu kılar.
//
// HTTP header formatı: Authorization: Bearer <token>
//
//  1. "Authorization" header'ını oku, "Bearer " prefix'ini kaldır
//  2. AuthService.Authenticate ile token'ı doğrula + hesabı yükle
//  3. Geçerliyse → hesabı context'e ekle → next
//  4. Geçersizse → 401, next ÇAĞIRILMAZ
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, MsgNoToken)
			return
		}

		account, err := m.authService.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrExpiredToken):
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, MsgTokenExpired)
			case errors.Is(err, services.ErrAccountGone):
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, MsgAccountGone)
			case errors.Is(err, pkg.ErrUnauthorized):
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, MsgInvalidToken)
			default:
				pkg.Error(w, err)
			}
			return
		}

		// Password hash'i temizle: context'te taşınmamalı
		account.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.AccountContextKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken, "Bearer <token>" header'ından token'ı çıkarır.
// Scheme büyük/küçük harf duyarsızdır (RFC 6750).
func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
