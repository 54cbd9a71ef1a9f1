package pkg

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

// GenericErrorMessage, 500 yanıtlarında client'a dönen tek mesaj.
// Asıl hata sadece server log'una yazılır.
const GenericErrorMessage = "Server error occurred"

// ErrorResponse, tüm hata yanıtları için standart format.
// Frontend her zaman aynı yapıyı bekler: tutarlılık önemli.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON, başarılı bir yanıt gönderir.
// "any" Go'da generic tip: herhangi bir veri tipini kabul eder.
// Body wrap edilmez: {message, token, user} gibi payload'lar olduğu gibi yazılır.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("[response] failed to encode response")
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
//
// Bilinmeyen error'lar (DB hatası, bug vb.) 500 + generic mesaj olur;
// detay log'a gider, client'a ASLA gitmez.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	message := GenericErrorMessage
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && status != http.StatusInternalServerError:
		message = apiErr.Message
	case status == http.StatusInternalServerError:
		logrus.WithError(err).Error("[response] internal error")
	default:
		message = http.StatusText(status)
	}

	ErrorWithMessage(w, status, message)
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Error("[response] failed to encode error response")
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() kullanarak error chain'ini kontrol eder,
// wrap edilmiş error'lar da doğru match eder.
//
// Conflict ve invalid credentials bilinçli olarak 400 döner:
// "kullanıcı yok" ile "şifre yanlış" aynı status + mesajı paylaşır (enumeration koruması).
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
