package postgres

import (
	"fmt"
	"strings"

	"not-project-backend/internal/repository"
)

// StoryQueryBuilder builds WHERE clauses for the public story list in
// PostgreSQL. The builder is shared between COUNT and SELECT queries to
// eliminate duplication. It uses PostgreSQL-specific features like ILIKE
// and numbered placeholders.
type StoryQueryBuilder struct{}

// NewStoryQueryBuilder creates a new query builder instance.
func NewStoryQueryBuilder() *StoryQueryBuilder {
	return &StoryQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for a filtered
// story list. publishedOnly pins is_published = TRUE, which every public
// view requires. Filters are optional: title substring search
// (case-insensitive), borough membership, and category association.
func (qb *StoryQueryBuilder) BuildWhereClause(filters repository.StoryFilters, publishedOnly bool) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if publishedOnly {
		conditions = append(conditions, "s.is_published = TRUE")
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("s.title ILIKE $%d", paramIndex))
		args = append(args, "%"+escapeILIKE(filters.Search)+"%")
		paramIndex++
	}

	if len(filters.Boroughs) > 0 {
		placeholders := make([]string, len(filters.Boroughs))
		for i, b := range filters.Boroughs {
			placeholders[i] = fmt.Sprintf("$%d", paramIndex)
			args = append(args, b)
			paramIndex++
		}
		conditions = append(conditions, fmt.Sprintf("s.borough IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(filters.CategoryIDs) > 0 {
		placeholders := make([]string, len(filters.CategoryIDs))
		for i, id := range filters.CategoryIDs {
			placeholders[i] = fmt.Sprintf("$%d", paramIndex)
			args = append(args, id)
			paramIndex++
		}
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM story_categories sc WHERE sc.story_id = s.id AND sc.category_id IN (%s))",
			strings.Join(placeholders, ", ")))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// escapeILIKE escapes the ILIKE wildcard characters in user input so a
// search for "100%" matches the literal string.
func escapeILIKE(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
