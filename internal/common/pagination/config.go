// Package pagination pages the story archive. Offset-based paging fits the
// archive's access pattern (readers browse recent pages, editors jump
// around); the strategy seam leaves room for cursor paging if the archive
// outgrows OFFSET scans.
package pagination

import (
	"os"
	"strconv"
)

// Config bounds what clients can ask for per page.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	// MaxLimit caps the page size a client may request.
	MaxLimit int
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT, and
// PAGINATION_MAX_LIMIT, falling back to the defaults for anything unset or
// unparseable.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  getEnvAsInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: getEnvAsInt("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     getEnvAsInt("PAGINATION_MAX_LIMIT", 100),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
