package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/loanapp/internal/auth"
)

func TestTokenClaims_AttachesUsername(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.NewToken(secret, "alice")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	var got string
	h := TokenClaims(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUsername(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/predict?token="+token, nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "alice" {
		t.Errorf("query token: got %q, want alice", got)
	}

	got = ""
	req = httptest.NewRequest(http.MethodGet, "/predict", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "alice" {
		t.Errorf("bearer token: got %q, want alice", got)
	}
}

func TestTokenClaims_NeverRejects(t *testing.T) {
	called := 0
	h := TokenClaims([]byte("k"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		if _, ok := GetUsername(r.Context()); ok {
			t.Error("invalid token must not attach a username")
		}
	}))

	for _, target := range []string{"/predict", "/predict?token=garbage"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", target, rr.Code)
		}
	}
	if called != 2 {
		t.Errorf("handler called %d times, want 2", called)
	}
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/predict", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out["message"], "Error: ") {
		t.Errorf("unexpected body: %v", out)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	if rr.Header().Get("Strict-Transport-Security") == "" {
		t.Error("missing HSTS when enabled")
	}
}

func TestFormLimit(t *testing.T) {
	h := FormLimit(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "too big", http.StatusRequestEntityTooLarge)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username="+strings.Repeat("a", 64)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rr.Code)
	}
}

func TestRequestLog_IncludesUsername(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	secret := []byte("k")
	token, _ := auth.NewToken(secret, "bob")

	h := TokenClaims(secret)(RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/predict?token="+token, nil))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if rec["username"] != "bob" || rec["status"] != float64(http.StatusTeapot) {
		t.Errorf("unexpected log record: %v", rec)
	}
}
