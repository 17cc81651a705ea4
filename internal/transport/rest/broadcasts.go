package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
	"github.com/heartmarshall/campusconnect-backend/pkg/ctxutil"
)

type broadcastService interface {
	Broadcast(ctx context.Context, msg domain.Message) (domain.BroadcastReport, error)
	Retry(ctx context.Context, msg domain.Message, failed []domain.DeliveryFailure) (domain.BroadcastReport, error)
	Announce(ctx context.Context, sub domain.Submission) (domain.BroadcastReport, error)
	Preview(sub domain.Submission) (domain.Message, error)
}

type submissionGetter interface {
	Get(ctx context.Context, sessionID string, id int64) (*domain.FeedItem, error)
}

// BroadcastHandler serves the explicit broadcast commands.
type BroadcastHandler struct {
	svc         broadcastService
	submissions submissionGetter
	log         *slog.Logger
}

// NewBroadcastHandler creates a BroadcastHandler.
func NewBroadcastHandler(svc broadcastService, submissions submissionGetter, logger *slog.Logger) *BroadcastHandler {
	return &BroadcastHandler{svc: svc, submissions: submissions, log: logger.With("handler", "broadcast")}
}

type messageRequest struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

func (m messageRequest) message() domain.Message {
	return domain.Message{Subject: m.Subject, Text: m.Text, HTML: m.HTML}
}

type retryRequest struct {
	messageRequest
	Failed []failureResponse `json:"failed"`
}

// Send handles POST /api/broadcasts.
func (h *BroadcastHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.svc.Broadcast(r.Context(), req.message())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

// Retry handles POST /api/broadcasts/retry, re-sending to a previous
// report's failed recipients only.
func (h *BroadcastHandler) Retry(w http.ResponseWriter, r *http.Request) {
	var req retryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	failed := make([]domain.DeliveryFailure, len(req.Failed))
	for i, f := range req.Failed {
		failed[i] = domain.DeliveryFailure{Recipient: domain.NormalizeEmail(f.Recipient), Reason: f.Reason}
	}

	report, err := h.svc.Retry(r.Context(), req.message(), failed)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

// Announce handles POST /api/submissions/{id}/broadcast.
func (h *BroadcastHandler) Announce(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.lookup(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Announce(r.Context(), *sub)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

// Preview handles GET /api/submissions/{id}/announcement, rendering the
// announcement email without sending it.
func (h *BroadcastHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.lookup(w, r)
	if !ok {
		return
	}

	msg, err := h.svc.Preview(*sub)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageRequest{Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML})
}

func (h *BroadcastHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Submission, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	sessionID, _ := ctxutil.SessionIDFromCtx(r.Context())

	item, err := h.submissions.Get(r.Context(), sessionID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	return &item.Submission, true
}
