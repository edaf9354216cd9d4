// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Story and Category, along with
// the story lifecycle state machine and domain-specific errors.
package entity

import "time"

// Story represents a published or draft story in the system.
// Content is rich text and may embed durable image URLs produced by the
// asset ingestion pipeline. The three lifecycle flags are owned by the
// lifecycle state machine in lifecycle.go; IsTrashed is internal-only and
// never leaves the projection layer.
type Story struct {
	ID            string
	AuthorID      string
	Title         string
	Content       string
	Summary       string
	Borough       string
	Thumbnail     string
	IsPublished   bool
	IsRadar       bool
	IsRecommended bool
	IsTrashed     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewStory creates a story in the Published state. Stories go live
// immediately on creation in this domain; radar and recommended start unset.
func NewStory(id, authorID, title, content, summary, borough, thumbnail string) *Story {
	now := time.Now().UTC()
	return &Story{
		ID:          id,
		AuthorID:    authorID,
		Title:       title,
		Content:     content,
		Summary:     summary,
		Borough:     borough,
		Thumbnail:   thumbnail,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
