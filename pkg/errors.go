// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("already exists")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
	ErrInternal           = errors.New("internal error")
)

// APIError, client'a gösterilebilecek bir mesaj taşıyan domain error'ıdır.
//
// Kind: yukarıdaki sentinel'lerden biri: status code'u belirler.
// Message: response body'ye aynen yazılır, iç detay İÇERMEZ.
//
// errors.Is(err, pkg.ErrBadRequest) Unwrap sayesinde çalışır.
type APIError struct {
	Kind    error
	Message string
}

// NewError, constructor.
func NewError(kind error, message string) error {
	return &APIError{Kind: kind, Message: message}
}

func (e *APIError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Kind
}
