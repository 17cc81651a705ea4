package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
	"github.com/heartmarshall/campusconnect-backend/internal/service/submission"
	"github.com/heartmarshall/campusconnect-backend/pkg/ctxutil"
)

type submissionService interface {
	Create(ctx context.Context, input submission.CreateInput) (*domain.Submission, error)
	Browse(ctx context.Context, sessionID string, input submission.BrowseInput) ([]domain.FeedItem, error)
	Get(ctx context.Context, sessionID string, id int64) (*domain.FeedItem, error)
	Remove(ctx context.Context, id int64) error
	ToggleVote(ctx context.Context, sessionID string, id int64) (*submission.VoteResult, error)
}

type announcer interface {
	Announce(ctx context.Context, sub domain.Submission) (domain.BroadcastReport, error)
}

// SubmissionHandler serves the feed endpoints.
type SubmissionHandler struct {
	svc      submissionService
	announce announcer
	log      *slog.Logger
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(svc submissionService, announce announcer, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, announce: announce, log: logger.With("handler", "submission")}
}

type createSubmissionRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	TBA         bool        `json:"tba"`
	Tags        domain.Tags `json:"tags"`
	Votes       int         `json:"votes"`
	Notify      bool        `json:"notify"`
}

type submissionResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	OccursAt    *time.Time `json:"occursAt"`
	DateTBA     bool       `json:"dateTBA"`
	Tags        []string   `json:"tags"`
	Votes       int        `json:"votes"`
	Voted       bool       `json:"voted"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type createSubmissionResponse struct {
	Submission     submissionResponse `json:"submission"`
	Broadcast      *reportResponse    `json:"broadcast,omitempty"`
	BroadcastError string             `json:"broadcastError,omitempty"`
}

type voteResponse struct {
	Count int  `json:"count"`
	Voted bool `json:"voted"`
}

// Create handles POST /api/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.svc.Create(r.Context(), submission.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
		TBA:         req.TBA,
		Tags:        req.Tags,
		Votes:       req.Votes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := createSubmissionResponse{
		Submission: toSubmissionResponse(domain.FeedItem{Submission: *sub, VoteCount: sub.VoteSeed}),
	}

	if req.Notify && sub.Category == domain.CategoryAnnouncement {
		report, err := h.announce.Announce(r.Context(), *sub)
		if err != nil {
			h.log.ErrorContext(r.Context(), "announce submission",
				slog.Int64("submission_id", sub.ID),
				slog.String("error", err.Error()),
			)
			resp.BroadcastError = "broadcast failed"
		} else {
			rep := toReportResponse(report)
			resp.Broadcast = &rep
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/submissions?tab=&q=.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := ctxutil.SessionIDFromCtx(r.Context())
	q := r.URL.Query()

	items, err := h.svc.Browse(r.Context(), sessionID, submission.BrowseInput{
		Tab:   q.Get("tab"),
		Query: q.Get("q"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]submissionResponse, len(items))
	for i, it := range items {
		out[i] = toSubmissionResponse(it)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/submissions/{id}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sessionID, _ := ctxutil.SessionIDFromCtx(r.Context())

	item, err := h.svc.Get(r.Context(), sessionID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(*item))
}

// Delete handles DELETE /api/submissions/{id}.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Vote handles POST /api/submissions/{id}/vote, toggling the caller's vote.
func (h *SubmissionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sessionID, _ := ctxutil.SessionIDFromCtx(r.Context())

	res, err := h.svc.ToggleVote(r.Context(), sessionID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voteResponse{Count: res.Count, Voted: res.Voted})
}

func toSubmissionResponse(it domain.FeedItem) submissionResponse {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return submissionResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		Category:    it.Category.String(),
		OccursAt:    it.OccursAt,
		DateTBA:     it.DateTBA(),
		Tags:        tags,
		Votes:       it.VoteCount,
		Voted:       it.HasVoted,
		CreatedAt:   it.CreatedAt,
	}
}
