package handlers

import (
	"net/http"
	"time"

	"github.com/akinalp/kushauth/pkg"
)

// MsgRouteNotFound, eşleşmeyen her path için dönen mesaj.
const MsgRouteNotFound = "Route not found"

// HealthHandler, liveness endpoint'i. Process başlangıç zamanını tutar.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler, constructor. started genelde process başlangıcıdır.
func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

type healthResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"` // saniye
}

// Health godoc
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	pkg.JSON(w, http.StatusOK, healthResponse{
		Message:   "Server is running",
		Timestamp: now,
		Uptime:    now.Sub(h.started).Seconds(),
	})
}

// NotFound, hiçbir route'a uymayan request'ler için 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	pkg.ErrorWithMessage(w, http.StatusNotFound, MsgRouteNotFound)
}
