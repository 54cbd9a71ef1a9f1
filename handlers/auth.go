// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/kushauth/models"
	"github.com/akinalp/kushauth/pkg"
	"github.com/akinalp/kushauth/services"
)

// contextKey, context'te değer saklamak için özel tip.
// String yerine özel tip kullanılır ki başka paketlerin key'leriyle çakışmasın.
type contextKey string

// AccountContextKey, auth middleware'ın doğruladığı hesabı context'e koyduğu key.
const AccountContextKey contextKey = "account"

// MsgInvalidBody, JSON parse edilemediğinde dönen mesaj.
const MsgInvalidBody = "Invalid request body"

// maxBodyBytes, auth body'leri küçüktür; daha büyüğü decode edilmez.
const maxBodyBytes = 1 << 20

// AuthHandler, auth endpoint'lerini yöneten struct.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler, constructor.
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    models.PublicAccount `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type profileResponse struct {
	User models.PublicAccount `json:"user"`
}

// Signup godoc
// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, authResponse{
		Message: "Account created successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

// Signin godoc
// POST /api/auth/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.SigninRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Signin(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Profile godoc
// GET /api/auth/profile: auth middleware gerektirir.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pkg.JSON(w, http.StatusOK, profileResponse{User: account.Public()})
}

// Logout godoc
// POST /api/auth/logout: token stateless'tır, sunucu tarafında silinecek bir şey yok.
// Client token'ı kendi tarafında atar.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := AccountFromContext(r); !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pkg.JSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// AccountFromContext, middleware'ın context'e koyduğu hesabı okur.
func AccountFromContext(r *http.Request) (*models.Account, bool) {
	account, ok := r.Context().Value(AccountContextKey).(*models.Account)
	return account, ok && account != nil
}

// decodeBody, JSON body'yi dst'ye parse eder. Hata varsa 400 yazar ve false döner.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}
