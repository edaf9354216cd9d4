package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern pairs a route regex with its normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidSegment = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// pathPatterns lists dynamic routes, most specific first. Pre-compiled so
// normalization stays cheap on the metrics hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/stories/s/` + uuidSegment + `$`), Template: "/stories/s/:id"},
	{Pattern: regexp.MustCompile(`^/stories/radar/` + uuidSegment + `$`), Template: "/stories/radar/:id"},
	{Pattern: regexp.MustCompile(`^/stories/republish/` + uuidSegment + `$`), Template: "/stories/republish/:id"},
	{Pattern: regexp.MustCompile(`^/stories/unpublish/` + uuidSegment + `$`), Template: "/stories/unpublish/:id"},
	{Pattern: regexp.MustCompile(`^/stories/` + uuidSegment + `/recommend$`), Template: "/stories/:id/recommend"},
	{Pattern: regexp.MustCompile(`^/stories/` + uuidSegment + `$`), Template: "/stories/:id"},
	{Pattern: regexp.MustCompile(`^/stories/saved/[^/]+$`), Template: "/stories/saved/:userId"},

	{Pattern: regexp.MustCompile(`^/categories/` + uuidSegment + `$`), Template: "/categories/:id"},

	// User IDs come from the auth provider and are opaque strings.
	{Pattern: regexp.MustCompile(`^/users/[^/]+$`), Template: "/users/:id"},
}

// NormalizePath collapses dynamic URL paths to template form so metrics
// labels stay bounded. Static paths pass through unchanged.
//
//	NormalizePath("/stories/s/6f1c...")  // "/stories/s/:id"
//	NormalizePath("/stories/radar")      // "/stories/radar" (static)
//	NormalizePath("/health")             // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
