package rest

import "net/http"

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health      *HealthHandler
	Submissions *SubmissionHandler
	Subscribers *SubscriberHandler
	Broadcasts  *BroadcastHandler
}

// NewRouter registers every route on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/submissions", h.Submissions.Create)
	mux.HandleFunc("GET /api/submissions", h.Submissions.List)
	mux.HandleFunc("GET /api/submissions/{id}", h.Submissions.Get)
	mux.HandleFunc("DELETE /api/submissions/{id}", h.Submissions.Delete)
	mux.HandleFunc("POST /api/submissions/{id}/vote", h.Submissions.Vote)

	mux.HandleFunc("POST /api/subscribers", h.Subscribers.Subscribe)
	mux.HandleFunc("GET /api/subscribers", h.Subscribers.List)

	mux.HandleFunc("POST /api/broadcasts", h.Broadcasts.Send)
	mux.HandleFunc("POST /api/broadcasts/retry", h.Broadcasts.Retry)
	mux.HandleFunc("POST /api/submissions/{id}/broadcast", h.Broadcasts.Announce)
	mux.HandleFunc("GET /api/submissions/{id}/announcement", h.Broadcasts.Preview)

	return mux
}
