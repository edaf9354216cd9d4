package asset

import (
	"strings"

	"github.com/google/uuid"
)

// keyPrefix is the object key namespace for all ingested images. The
// orphan sweeper only ever touches keys under this prefix.
const keyPrefix = "images/"

const maxSlugLength = 50

// slugify lowercases the title and collapses everything outside [a-z0-9]
// to underscores, capped at maxSlugLength. The slug only exists to keep
// object keys readable; uniqueness comes from the token.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if b.Len() >= maxSlugLength {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

// newToken returns a short random token that makes each object key unique
// and non-guessable enough to avoid collisions between uploads.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// buildKey assembles an object key: images/{slug}-{token}-{role}{ext}.
func buildKey(title, role, ext string) string {
	return keyPrefix + slugify(title) + "-" + newToken() + "-" + role + ext
}
