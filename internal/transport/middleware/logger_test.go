package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/campusconnect-backend/pkg/ctxutil"
)

func runLogged(t *testing.T, handler http.Handler, req *http.Request) string {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)
	return buf.String()
}

func TestLogger_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	logOutput := runLogged(t, handler, httptest.NewRequest(http.MethodGet, "/api/submissions", nil))

	for _, want := range []string{"http.request", `"method":"GET"`, `"path":"/api/submissions"`, `"status":200`, `"bytes":5`, "duration", `"level":"INFO"`, `"session":false`} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("expected log to contain %q, got %q", want, logOutput)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusCreated, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			logOutput := runLogged(t, handler, httptest.NewRequest(http.MethodPost, "/", nil))

			if !strings.Contains(logOutput, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %s, got %q", tt.level, logOutput)
			}
		})
	}
}

func TestLogger_ContextIdentifiers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := ctxutil.WithRequestID(req.Context(), "req-123")
	ctx = ctxutil.WithSessionID(ctx, "sess-abc")

	logOutput := runLogged(t, handler, req.WithContext(ctx))

	if !strings.Contains(logOutput, `"request_id":"req-123"`) {
		t.Errorf("expected request_id in log, got %q", logOutput)
	}
	if !strings.Contains(logOutput, `"session":true`) {
		t.Errorf("expected session presence in log, got %q", logOutput)
	}
	if strings.Contains(logOutput, "sess-abc") {
		t.Errorf("session id must not be logged, got %q", logOutput)
	}
}
