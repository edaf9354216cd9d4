package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		prefix    string
		wantID    string
		wantError error
	}{
		{
			name:   "valid story ID",
			path:   "/stories/s/6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			prefix: "/stories/s/",
			wantID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{
			name:   "uppercase normalized",
			path:   "/categories/6BA7B810-9DAD-11D1-80B4-00C04FD430C8",
			prefix: "/categories/",
			wantID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{
			name:   "trailing slash tolerated",
			path:   "/stories/s/6ba7b810-9dad-11d1-80b4-00c04fd430c8/",
			prefix: "/stories/s/",
			wantID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{
			name:      "not a uuid",
			path:      "/stories/s/123",
			prefix:    "/stories/s/",
			wantError: ErrInvalidID,
		},
		{
			name:      "empty segment",
			path:      "/stories/s/",
			prefix:    "/stories/s/",
			wantError: ErrInvalidID,
		},
		{
			name:      "extra segments",
			path:      "/stories/s/6ba7b810-9dad-11d1-80b4-00c04fd430c8/comments",
			prefix:    "/stories/s/",
			wantError: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if !errors.Is(err, tt.wantError) {
				t.Fatalf("ExtractID() error = %v, want %v", err, tt.wantError)
			}
			if got != tt.wantID {
				t.Errorf("ExtractID() = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestExtractSegment(t *testing.T) {
	got, err := ExtractSegment("/stories/saved/auth0|user1", "/stories/saved/")
	if err != nil || got != "auth0|user1" {
		t.Fatalf("ExtractSegment() = %q, %v", got, err)
	}

	if _, err := ExtractSegment("/stories/saved/", "/stories/saved/"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("empty segment: error = %v, want ErrInvalidID", err)
	}
	if _, err := ExtractSegment("/stories/saved/a/b", "/stories/saved/"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("nested segment: error = %v, want ErrInvalidID", err)
	}
}
