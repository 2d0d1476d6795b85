package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"room-booking-backend/internal/auth"
	"room-booking-backend/internal/notification"
	"room-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	auth    *auth.Service
	webpush *webpush.Options
	pool    *notification.WorkerPool
}

// NewHandler creates a new API handler. pool may be nil when push
// notifications are disabled.
func NewHandler(s store.Store, authSvc *auth.Service, webpushOptions *webpush.Options, pool *notification.WorkerPool) *Handler {
	return &Handler{
		store:   s,
		auth:    authSvc,
		webpush: webpushOptions,
		pool:    pool,
	}
}
