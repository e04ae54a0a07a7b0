package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".credentials.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenPriority(t *testing.T) {
	path := writeCredentials(t, `{"claudeAiOauth": {"accessToken": "file-token"}}`)

	t.Run("explicit wins over everything", func(t *testing.T) {
		t.Setenv("CLAUDE_OAUTH_TOKEN", "env-token")
		src := NewCredentialSourceAt("flag-token", path)
		token, ok := src.Token()
		if !ok || token != "flag-token" {
			t.Errorf("token = %q, %v", token, ok)
		}
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("CLAUDE_OAUTH_TOKEN", "env-token")
		src := NewCredentialSourceAt("", path)
		token, ok := src.Token()
		if !ok || token != "env-token" {
			t.Errorf("token = %q, %v", token, ok)
		}
	})

	t.Run("file is the fallback", func(t *testing.T) {
		t.Setenv("CLAUDE_OAUTH_TOKEN", "")
		src := NewCredentialSourceAt("", path)
		token, ok := src.Token()
		if !ok || token != "file-token" {
			t.Errorf("token = %q, %v", token, ok)
		}
	})
}

func TestTokenNotLoggedIn(t *testing.T) {
	t.Setenv("CLAUDE_OAUTH_TOKEN", "")

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"malformed json", writeCredentials(t, `{broken`)},
		{"empty token field", writeCredentials(t, `{"claudeAiOauth": {"accessToken": ""}}`)},
		{"unrelated content", writeCredentials(t, `{"somethingElse": true}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewCredentialSourceAt("", tt.path)
			if token, ok := src.Token(); ok {
				t.Errorf("token = %q, want not logged in", token)
			}
		})
	}
}

func TestTokenReadPerCall(t *testing.T) {
	t.Setenv("CLAUDE_OAUTH_TOKEN", "")
	path := writeCredentials(t, `{"claudeAiOauth": {"accessToken": "first"}}`)
	src := NewCredentialSourceAt("", path)

	if token, _ := src.Token(); token != "first" {
		t.Fatalf("token = %q", token)
	}

	// A re-login rewrites the store; the next call must see it.
	if err := os.WriteFile(path, []byte(`{"claudeAiOauth": {"accessToken": "second"}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if token, _ := src.Token(); token != "second" {
		t.Errorf("token after rewrite = %q, want %q", token, "second")
	}
}

func TestHeaders(t *testing.T) {
	src := NewCredentialSourceAt("tok-abc", "")

	headers, ok := src.Headers()
	if !ok {
		t.Fatal("Headers reported no token")
	}
	if got := headers["Authorization"]; got != "Bearer tok-abc" {
		t.Errorf("Authorization = %q", got)
	}
	for _, key := range []string{"Content-Type", "User-Agent", "anthropic-beta"} {
		if headers[key] == "" {
			t.Errorf("header %s missing", key)
		}
	}

	t.Setenv("CLAUDE_OAUTH_TOKEN", "")
	if _, ok := NewCredentialSourceAt("", "").Headers(); ok {
		t.Error("Headers should report no token")
	}
}
