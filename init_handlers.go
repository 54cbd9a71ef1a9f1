// Package main: Handler katmanı başlatma.
//
// Handler'lar "thin" dir: sadece HTTP parse + service call + response write.
package main

import (
	"time"

	"github.com/akinalp/kushauth/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
}

func initHandlers(svcs *Services, started time.Time) *Handlers {
	return &Handlers{
		Auth:   handlers.NewAuthHandler(svcs.Auth),
		Health: handlers.NewHealthHandler(started),
	}
}
