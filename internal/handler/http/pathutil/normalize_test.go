package pathutil

import (
	"testing"
)

const testUUID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"story detail", "/stories/s/" + testUUID, "/stories/s/:id"},
		{"story edit", "/stories/" + testUUID, "/stories/:id"},
		{"story recommend", "/stories/" + testUUID + "/recommend", "/stories/:id/recommend"},
		{"radar promote", "/stories/radar/" + testUUID, "/stories/radar/:id"},
		{"republish", "/stories/republish/" + testUUID, "/stories/republish/:id"},
		{"unpublish", "/stories/unpublish/" + testUUID, "/stories/unpublish/:id"},
		{"saved list", "/stories/saved/auth0|user1", "/stories/saved/:userId"},
		{"category", "/categories/" + testUUID, "/categories/:id"},
		{"user", "/users/auth0|user1", "/users/:id"},

		// Static routes pass through.
		{"radar current", "/stories/radar", "/stories/radar"},
		{"recommended", "/stories/recommended", "/stories/recommended"},
		{"hidden", "/stories/hidden", "/stories/hidden"},
		{"health", "/health", "/health"},
		{"metrics", "/metrics", "/metrics"},
		{"active categories", "/categories/active", "/categories/active"},

		// Query strings and trailing slashes are stripped first.
		{"query string", "/stories/s/" + testUUID + "?userId=u1", "/stories/s/:id"},
		{"trailing slash", "/stories/s/" + testUUID + "/", "/stories/s/:id"},
		{"root", "/", "/"},

		// Unknown paths are returned unchanged.
		{"unknown", "/unknown/path/123", "/unknown/path/123"},
		{"numeric id is not a uuid", "/stories/s/123", "/stories/s/123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
