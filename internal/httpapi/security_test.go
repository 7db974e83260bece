package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"kioskanalyzer/internal/domain"
)

func TestMiddlewareSetsSecurityHeadersAndRequestID(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, "", http.MethodGet, "/healthz", nil)
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected nosniff header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("expected frame deny header")
	}
	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Fatalf("expected generated request id, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestMiddlewarePropagatesClientRequestID(t *testing.T) {
	handler := newTestAPI(t).Handler()
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != id {
		t.Fatalf("expected request id %q, got %q", id, rec.Header().Get("X-Request-ID"))
	}
}

func TestLoginRateLimitReturns429(t *testing.T) {
	handler := newTestAPI(t).Handler()

	var last int
	for i := 0; i < 6; i++ {
		rec := doJSON(t, handler, "", http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "owner", "password": "wrong"})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated attempts, got %d", last)
	}
}

func TestJSONBodyTooLargeRejected(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := login(t, handler)

	payload := `{"item":"` + strings.Repeat("a", 2<<20) + `","quantity":1,"cost":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", rec.Code)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	auth := NewAuthManager("test-secret-key-test-secret-key!", time.Minute, "owner", "pizza-time")
	auth.now = func() time.Time { return time.Now().Add(-time.Hour) }

	resp, err := auth.Login(loginReq("owner", "pizza-time"))
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	auth.now = time.Now
	if _, err := auth.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestAuthManagerAcceptsPreHashedPassword(t *testing.T) {
	hashed, err := hashPassword("pizza-time")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth := NewAuthManager("test-secret-key-test-secret-key!", time.Hour, "owner", hashed)

	resp, err := auth.Login(loginReq("owner", "pizza-time"))
	if err != nil {
		t.Fatalf("expected login with pre-hashed password, got %v", err)
	}
	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil || actor.Username != "owner" {
		t.Fatalf("unexpected actor %+v err=%v", actor, err)
	}
}

func TestAuthManagerWithoutPasswordRejectsEveryone(t *testing.T) {
	auth := NewAuthManager("test-secret-key-test-secret-key!", time.Hour, "owner", "")

	if _, err := auth.Login(loginReq("owner", "")); err == nil {
		t.Fatalf("expected login to fail when no password is configured")
	}
}

func loginReq(username, password string) domain.LoginRequest {
	return domain.LoginRequest{Username: username, Password: password}
}
