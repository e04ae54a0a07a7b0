package config

import (
	"encoding/json"
	"os"

	"github.com/claudeutils/usage-tray/internal/constants"
)

// credentialsFile mirrors the subset of the Claude Code credential store
// this application reads.
type credentialsFile struct {
	ClaudeAiOauth struct {
		AccessToken string `json:"accessToken"`
	} `json:"claudeAiOauth"`
}

// CredentialSource resolves the OAuth access token used against the
// Anthropic OAuth endpoints. The token is re-read on every use so a
// re-login is picked up without restarting the tray.
type CredentialSource struct {
	explicit string
	path     string
}

// NewCredentialSource creates a credential source.
// explicitToken, when non-empty, takes priority over all other sources.
func NewCredentialSource(explicitToken string) *CredentialSource {
	return &CredentialSource{
		explicit: explicitToken,
		path:     CredentialsPath(),
	}
}

// NewCredentialSourceAt is like NewCredentialSource with a custom
// credential store path. Used by tests.
func NewCredentialSourceAt(explicitToken, path string) *CredentialSource {
	return &CredentialSource{explicit: explicitToken, path: path}
}

// Path returns the credential store location this source reads from.
func (s *CredentialSource) Path() string {
	return s.path
}

// Token returns the access token by checking sources in priority order.
//
// Priority (highest to lowest):
//  1. Explicitly provided token (e.g. from a flag)
//  2. CLAUDE_OAUTH_TOKEN environment variable
//  3. Claude Code credential store (~/.claude/.credentials.json)
//
// Returns ok=false when no token is available from any source. A missing
// or malformed credential store is treated as "not logged in", never as
// an error.
func (s *CredentialSource) Token() (string, bool) {
	if s.explicit != "" {
		return s.explicit, true
	}

	if env := os.Getenv("CLAUDE_OAUTH_TOKEN"); env != "" {
		return env, true
	}

	if s.path == "" {
		return "", false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", false
	}
	if creds.ClaudeAiOauth.AccessToken == "" {
		return "", false
	}
	return creds.ClaudeAiOauth.AccessToken, true
}

// Headers returns the request headers for the Anthropic OAuth API, or
// ok=false when no token is available.
func (s *CredentialSource) Headers() (map[string]string, bool) {
	token, ok := s.Token()
	if !ok {
		return nil, false
	}
	return map[string]string{
		"Authorization":  "Bearer " + token,
		"Content-Type":   "application/json",
		"User-Agent":     constants.UserAgent,
		"anthropic-beta": constants.AnthropicBeta,
	}, true
}
