package handler

import (
	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/moderation"
	"billboardgo/backend/internal/push"
	"billboardgo/backend/internal/realtime"
	"billboardgo/backend/internal/storage"
)

// Notifier is the slice of the realtime dispatcher the handlers need.
type Notifier interface {
	Notify(recipientID, kind string, payload any)
}

// ModerationAlerter receives out-of-band alerts for the administrator
// (implemented by the Telegram bot). May be nil when no bot is configured.
type ModerationAlerter interface {
	AlertNewListing(b *models.Billboard)
	AlertNewReport(r *models.Report)
}

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	Storage    storage.Storage
	Registry   *realtime.Registry
	Notifier   Notifier
	Moderation *moderation.Service
	Push       *push.Provider
	Alerter    ModerationAlerter

	JWTSecret []byte
}

func NewHandler(
	s storage.Storage,
	registry *realtime.Registry,
	notifier Notifier,
	mod *moderation.Service,
	pushProvider *push.Provider,
	jwtSecret []byte,
) *Handler {
	return &Handler{
		Storage:    s,
		Registry:   registry,
		Notifier:   notifier,
		Moderation: mod,
		Push:       pushProvider,
		JWTSecret:  jwtSecret,
	}
}

func (h *Handler) alertNewListing(b *models.Billboard) {
	if h.Alerter != nil {
		h.Alerter.AlertNewListing(b)
	}
}

func (h *Handler) alertNewReport(r *models.Report) {
	if h.Alerter != nil {
		h.Alerter.AlertNewReport(r)
	}
}
