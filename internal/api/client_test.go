package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/claudeutils/usage-tray/internal/config"
)

func testClient(t *testing.T, token string, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	creds := config.NewCredentialSourceAt(token, "")
	client := NewClient(creds, zerolog.Nop())
	client.SetBaseURLs(server.URL+"/usage", server.URL+"/profile")
	return client
}

func TestFetchUsage(t *testing.T) {
	client := testClient(t, "tok-123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("anthropic-beta"); got == "" {
			t.Error("anthropic-beta header missing")
		}
		w.Write([]byte(`{
			"five_hour": {"utilization": 42.5, "resets_at": "2026-01-02T15:00:00Z"},
			"seven_day": {"utilization": 80, "resets_at": "2026-01-05T00:00:00Z"}
		}`))
	}))

	usage, err := client.FetchUsage(context.Background())
	if err != nil {
		t.Fatalf("FetchUsage: %v", err)
	}
	if got := usage.FiveHour.Pct(); got != 42.5 {
		t.Errorf("five hour pct = %v, want 42.5", got)
	}
	if got := usage.SevenDay.Pct(); got != 80 {
		t.Errorf("seven day pct = %v, want 80", got)
	}
	if usage.SevenDaySonnet != nil {
		t.Error("absent window should stay nil")
	}
}

func TestFetchUsageNoToken(t *testing.T) {
	t.Setenv("CLAUDE_OAUTH_TOKEN", "")

	called := false
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.FetchUsage(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
	if called {
		t.Error("no request should be made without a token")
	}
}

func TestFetchUsageAuthExpired(t *testing.T) {
	client := testClient(t, "stale", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.FetchUsage(context.Background())
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("err = %v, want ErrAuthExpired", err)
	}
	if !IsAuthError(err) {
		t.Error("IsAuthError should report true for 401")
	}
}

func TestFetchUsageStatusError(t *testing.T) {
	// 403 fails on the first attempt; 503 is retried first, and the final
	// response must still surface its status code rather than collapse
	// into a connection error.
	for _, code := range []int{http.StatusForbidden, http.StatusServiceUnavailable} {
		client := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := client.FetchUsage(context.Background())
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: err = %v, want *StatusError", code, err)
		}
		if statusErr.Code != code {
			t.Errorf("code = %d, want %d", statusErr.Code, code)
		}
		if errors.Is(err, ErrConnection) {
			t.Errorf("status %d misreported as a connection error", code)
		}
	}
}

func TestFetchUsageConnectionError(t *testing.T) {
	creds := config.NewCredentialSourceAt("tok", "")
	client := NewClient(creds, zerolog.Nop())
	client.SetBaseURLs("http://127.0.0.1:1/usage", "http://127.0.0.1:1/profile")

	_, err := client.FetchUsage(context.Background())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("err = %v, want ErrConnection", err)
	}
}

func TestFetchUsageMalformedBody(t *testing.T) {
	client := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := client.FetchUsage(context.Background())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("err = %v, want ErrConnection", err)
	}
}

func TestFetchProfile(t *testing.T) {
	client := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"account": {"email": "dev@example.com"},
			"organization": {"organization_type": "claude_max"}
		}`))
	}))

	profile := client.FetchProfile(context.Background())
	if profile == nil {
		t.Fatal("FetchProfile returned nil")
	}
	if profile.Account.Email != "dev@example.com" {
		t.Errorf("email = %q", profile.Account.Email)
	}
	if profile.Organization.OrganizationType != "claude_max" {
		t.Errorf("organization type = %q", profile.Organization.OrganizationType)
	}
}

func TestFetchProfileFailureReturnsNil(t *testing.T) {
	client := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if profile := client.FetchProfile(context.Background()); profile != nil {
		t.Errorf("profile = %+v, want nil", profile)
	}
}
