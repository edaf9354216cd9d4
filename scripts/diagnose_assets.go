// Diagnostic tool for story assets: walks every asset URL referenced by a
// story (thumbnail and content images) and checks that it is actually
// reachable on the public CDN. Run against production periodically to catch
// assets that were deleted from the bucket while still referenced, or
// stories pointing at a stale base URL.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run scripts/diagnose_assets.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// AssetDiagnostic is the check result for a single asset URL.
type AssetDiagnostic struct {
	StoryID       string `json:"story_id"`
	StoryTitle    string `json:"story_title"`
	Role          string `json:"role"` // "thumbnail" or "content"
	URL           string `json:"url"`
	Status        string `json:"status"` // "OK", "HTTP_ERROR", "TIMEOUT", "NOT_IMAGE"
	HTTPCode      int    `json:"http_code"`
	ContentType   string `json:"content_type,omitempty"`
	ContentLength int64  `json:"content_length"`
	ResponseTime  int64  `json:"response_time_ms"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

type storyAssets struct {
	ID        string
	Title     string
	Thumbnail sql.NullString
	Content   string
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	stories, err := loadStories(ctx, db)
	if err != nil {
		log.Fatalf("failed to load stories: %v", err)
	}
	fmt.Printf("Checking assets for %d stories...\n\n", len(stories))

	client := &http.Client{Timeout: 15 * time.Second}

	var results []AssetDiagnostic
	for _, s := range stories {
		if s.Thumbnail.Valid && s.Thumbnail.String != "" {
			results = append(results, checkAsset(ctx, client, s, "thumbnail", s.Thumbnail.String))
		}
		for _, url := range extractImageURLs(s.Content) {
			results = append(results, checkAsset(ctx, client, s, "content", url))
		}
	}

	report(results)
}

func loadStories(ctx context.Context, db *sql.DB) ([]storyAssets, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, thumbnail_url, content FROM stories ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var stories []storyAssets
	for rows.Next() {
		var s storyAssets
		if err := rows.Scan(&s.ID, &s.Title, &s.Thumbnail, &s.Content); err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}

// extractImageURLs pulls img src attributes out of story HTML. A regexp-free
// scan is enough here; the content is produced by our own editor.
func extractImageURLs(content string) []string {
	var urls []string
	rest := content
	for {
		idx := strings.Index(rest, `src="`)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(`src="`):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			break
		}
		url := rest[:end]
		rest = rest[end:]
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			urls = append(urls, url)
		}
	}
	return urls
}

func checkAsset(ctx context.Context, client *http.Client, s storyAssets, role, url string) AssetDiagnostic {
	diag := AssetDiagnostic{
		StoryID:    s.ID,
		StoryTitle: s.Title,
		Role:       role,
		URL:        url,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	start := time.Now()
	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			diag.Status = "TIMEOUT"
		} else {
			diag.Status = "HTTP_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}
	defer func() { _ = resp.Body.Close() }()

	diag.HTTPCode = resp.StatusCode
	diag.ContentType = resp.Header.Get("Content-Type")

	n, _ := io.Copy(io.Discard, resp.Body)
	diag.ContentLength = n

	switch {
	case resp.StatusCode != http.StatusOK:
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("HTTP %d", resp.StatusCode)
	case !strings.HasPrefix(diag.ContentType, "image/"):
		diag.Status = "NOT_IMAGE"
		diag.ErrorMessage = fmt.Sprintf("unexpected content type %q", diag.ContentType)
	default:
		diag.Status = "OK"
	}
	return diag
}

func report(results []AssetDiagnostic) {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
	}

	fmt.Printf("%-10s %-38s %-9s %-5s %8s  %s\n",
		"STATUS", "STORY", "ROLE", "CODE", "TIME(ms)", "URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range results {
		if r.Status == "OK" {
			continue
		}
		title := r.StoryTitle
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		fmt.Printf("%-10s %-38s %-9s %-5d %8d  %s\n",
			r.Status, title, r.Role, r.HTTPCode, r.ResponseTime, r.URL)
	}

	fmt.Printf("\nTotal: %d assets, OK: %d, broken: %d\n",
		len(results), counts["OK"], len(results)-counts["OK"])

	// Full machine-readable report for follow-up tooling.
	out, err := json.MarshalIndent(results, "", "  ")
	if err == nil {
		if err := os.WriteFile("asset_diagnostics.json", out, 0o644); err == nil {
			fmt.Println("Detailed report written to asset_diagnostics.json")
		}
	}
}
