package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

type subscriberService interface {
	Subscribe(ctx context.Context, email string) (domain.SubscribeOutcome, error)
	Snapshot(ctx context.Context) ([]string, error)
}

// SubscriberHandler serves the notification roster endpoints.
type SubscriberHandler struct {
	svc subscriberService
	log *slog.Logger
}

// NewSubscriberHandler creates a SubscriberHandler.
func NewSubscriberHandler(svc subscriberService, logger *slog.Logger) *SubscriberHandler {
	return &SubscriberHandler{svc: svc, log: logger.With("handler", "subscriber")}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Status string `json:"status"`
}

// Subscribe handles POST /api/subscribers. A new address answers 201,
// an existing one 200 with status already_subscribed.
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusCreated
	if outcome == domain.SubscribeAlreadySubscribed {
		status = http.StatusOK
	}
	writeJSON(w, status, subscribeResponse{Status: outcome.String()})
}

// List handles GET /api/subscribers.
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	emails, err := h.svc.Snapshot(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if emails == nil {
		emails = []string{}
	}
	writeJSON(w, http.StatusOK, emails)
}
