package postgres_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pg "not-project-backend/internal/infra/adapter/persistence/postgres"
	"not-project-backend/internal/repository"
)

func TestStoryQueryBuilder_BuildWhereClause(t *testing.T) {
	qb := pg.NewStoryQueryBuilder()

	tests := []struct {
		name          string
		filters       repository.StoryFilters
		publishedOnly bool
		wantClause    string
		wantArgs      []interface{}
	}{
		{
			name:       "no filters, no published pin",
			wantClause: "",
		},
		{
			name:          "published only",
			publishedOnly: true,
			wantClause:    "WHERE s.is_published = TRUE",
		},
		{
			name:          "title search",
			filters:       repository.StoryFilters{Search: "harbor"},
			publishedOnly: true,
			wantClause:    "WHERE s.is_published = TRUE AND s.title ILIKE $1",
			wantArgs:      []interface{}{"%harbor%"},
		},
		{
			name:          "search escapes wildcards",
			filters:       repository.StoryFilters{Search: "100%_done"},
			publishedOnly: true,
			wantClause:    "WHERE s.is_published = TRUE AND s.title ILIKE $1",
			wantArgs:      []interface{}{`%100\%\_done%`},
		},
		{
			name:          "boroughs",
			filters:       repository.StoryFilters{Boroughs: []string{"queens", "bronx"}},
			publishedOnly: true,
			wantClause:    "WHERE s.is_published = TRUE AND s.borough IN ($1, $2)",
			wantArgs:      []interface{}{"queens", "bronx"},
		},
		{
			name: "all filters stack with sequential placeholders",
			filters: repository.StoryFilters{
				Search:      "park",
				Boroughs:    []string{"manhattan"},
				CategoryIDs: []string{"c1", "c2"},
			},
			publishedOnly: true,
			wantClause: "WHERE s.is_published = TRUE AND s.title ILIKE $1 AND s.borough IN ($2) " +
				"AND EXISTS (SELECT 1 FROM story_categories sc WHERE sc.story_id = s.id AND sc.category_id IN ($3, $4))",
			wantArgs: []interface{}{"%park%", "manhattan", "c1", "c2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := qb.BuildWhereClause(tt.filters, tt.publishedOnly)
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
