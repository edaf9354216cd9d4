package story

import (
	"time"

	"not-project-backend/internal/repository"
)

// View selects how much of a story a projection exposes.
type View int

const (
	// ViewList is the compact card shape used by list endpoints: no
	// content, no updatedAt, no lifecycle flags.
	ViewList View = iota
	// ViewDetail is the full story page shape.
	ViewDetail
)

// PublicAuthor is the author reduced to a display name.
type PublicAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PublicCategory is a category reference on a story.
type PublicCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PublicStory is the wire shape for a story. The trash flag never appears
// in either view.
type PublicStory struct {
	ID          string           `json:"id"`
	AuthorID    string           `json:"authorId"`
	Title       string           `json:"title"`
	Summary     string           `json:"summary"`
	Borough     string           `json:"borough"`
	Thumbnail   string           `json:"thumbnail"`
	IsPublished bool             `json:"isPublished"`
	CreatedAt   time.Time        `json:"createdAt"`
	Categories  []PublicCategory `json:"categories"`
	Author      PublicAuthor     `json:"author"`

	// Detail view only.
	Content       string     `json:"content,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	IsRadar       *bool      `json:"isRadar,omitempty"`
	IsRecommended *bool      `json:"isRecommended,omitempty"`
	// IsSaved is set only when the viewer was identified.
	IsSaved *bool `json:"isSaved,omitempty"`
}

// Project flattens a story row into its public shape. saved may be nil for
// anonymous viewers; it is only honored in the detail view.
func Project(row *repository.StoryWithRelations, view View, saved *bool) PublicStory {
	s := row.Story

	categories := make([]PublicCategory, 0, len(row.Categories))
	for _, c := range row.Categories {
		categories = append(categories, PublicCategory{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		})
	}

	out := PublicStory{
		ID:          s.ID,
		AuthorID:    s.AuthorID,
		Title:       s.Title,
		Summary:     s.Summary,
		Borough:     s.Borough,
		Thumbnail:   s.Thumbnail,
		IsPublished: s.IsPublished,
		CreatedAt:   s.CreatedAt,
		Categories:  categories,
		Author: PublicAuthor{
			FirstName: row.AuthorFirstName,
			LastName:  row.AuthorLastName,
		},
	}

	if view == ViewDetail {
		out.Content = s.Content
		updatedAt := s.UpdatedAt
		out.UpdatedAt = &updatedAt
		isRadar := s.IsRadar
		out.IsRadar = &isRadar
		isRecommended := s.IsRecommended
		out.IsRecommended = &isRecommended
		out.IsSaved = saved
	}
	return out
}

// ProjectAll maps a result page into list projections.
func ProjectAll(rows []repository.StoryWithRelations, view View) []PublicStory {
	out := make([]PublicStory, 0, len(rows))
	for i := range rows {
		out = append(out, Project(&rows[i], view, nil))
	}
	return out
}
