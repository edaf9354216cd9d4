package story_test

import (
	"context"
	"time"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

/* ───────── shared fixtures ───────── */

// Route patterns validate UUIDs, so fixtures need real ones.
const (
	storyID1 = "3f0f7a1e-9a43-4b53-8a1a-2f8f4f9d1c01"
	storyID2 = "8c2d5b3a-1e77-4f20-9c4b-6a0e2d7f3b02"
	storyID3 = "d4a9c8e1-5b36-4d72-8f10-9e3c1a6b2d03"
	absentID = "00000000-0000-4000-8000-000000000000"
)

/* ───────── stub repository ───────── */

// stubStoryRepo is an in-memory StoryRepository shared by the handler
// tests. Set err to force every call to fail.
type stubStoryRepo struct {
	rows  map[string]*repository.StoryWithRelations
	order []string
	saved map[string]bool // "storyID|userID"
	err   error

	replacedCategories map[string][]string
}

func newStubStoryRepo() *stubStoryRepo {
	return &stubStoryRepo{
		rows:               map[string]*repository.StoryWithRelations{},
		saved:              map[string]bool{},
		replacedCategories: map[string][]string{},
	}
}

func (s *stubStoryRepo) add(row *repository.StoryWithRelations) {
	s.rows[row.Story.ID] = row
	s.order = append(s.order, row.Story.ID)
}

func newRow(id, title string, published bool) *repository.StoryWithRelations {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &repository.StoryWithRelations{
		Story: &entity.Story{
			ID:          id,
			AuthorID:    "author-1",
			Title:       title,
			Content:     "<p>body</p>",
			Summary:     "summary",
			Borough:     "Brooklyn",
			Thumbnail:   "https://cdn.example.com/thumb.webp",
			IsPublished: published,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Categories:      []entity.Category{{ID: "cat-1", Name: "Harbor Life"}},
		AuthorFirstName: "Jordan",
		AuthorLastName:  "Reyes",
	}
}

func (s *stubStoryRepo) Create(_ context.Context, story *entity.Story) error {
	if s.err != nil {
		return s.err
	}
	s.add(&repository.StoryWithRelations{Story: story})
	return nil
}

func (s *stubStoryRepo) Get(_ context.Context, id string) (*entity.Story, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return row.Story, nil
}

func (s *stubStoryRepo) GetWithRelations(_ context.Context, id string) (*repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[id], nil
}

func (s *stubStoryRepo) List(_ context.Context, filters repository.StoryFilters, offset, limit int) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	published := s.published()
	if offset >= len(published) {
		return nil, nil
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], nil
}

func (s *stubStoryRepo) Count(_ context.Context, _ repository.StoryFilters) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.published())), nil
}

func (s *stubStoryRepo) ListHidden(_ context.Context) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.StoryWithRelations
	for _, id := range s.order {
		if !s.rows[id].Story.IsPublished {
			out = append(out, *s.rows[id])
		}
	}
	return out, nil
}

func (s *stubStoryRepo) ListRecommended(_ context.Context, limit int) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.StoryWithRelations
	for _, id := range s.order {
		row := s.rows[id]
		if row.Story.IsPublished && row.Story.IsRecommended && len(out) < limit {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *stubStoryRepo) Update(_ context.Context, story *entity.Story) error {
	if s.err != nil {
		return s.err
	}
	if row, ok := s.rows[story.ID]; ok {
		row.Story = story
	}
	return nil
}

func (s *stubStoryRepo) SetPublished(_ context.Context, id string, published bool) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return entity.ErrNotFound
	}
	if !published && row.Story.IsRadar {
		return entity.ErrRadarConflict
	}
	row.Story.IsPublished = published
	return nil
}

func (s *stubStoryRepo) SetRecommended(_ context.Context, id string, recommended bool) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return entity.ErrNotFound
	}
	row.Story.IsRecommended = recommended
	return nil
}

func (s *stubStoryRepo) PromoteRadar(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return entity.ErrNotFound
	}
	if !row.Story.IsPublished {
		return entity.ErrNotPublished
	}
	for _, other := range s.rows {
		other.Story.IsRadar = false
	}
	row.Story.IsRadar = true
	return nil
}

func (s *stubStoryRepo) FindRadar(_ context.Context) (*repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, id := range s.order {
		if s.rows[id].Story.IsRadar {
			return s.rows[id], nil
		}
	}
	return nil, nil
}

func (s *stubStoryRepo) PromoteRadarCandidate(_ context.Context) (*repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var fallback *repository.StoryWithRelations
	for _, id := range s.order {
		row := s.rows[id]
		if !row.Story.IsPublished {
			continue
		}
		if row.Story.IsRecommended {
			row.Story.IsRadar = true
			return row, nil
		}
		if fallback == nil {
			fallback = row
		}
	}
	if fallback == nil {
		return nil, nil
	}
	fallback.Story.IsRadar = true
	return fallback, nil
}

func (s *stubStoryRepo) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return entity.ErrNotFound
	}
	st := row.Story
	if st.IsPublished || st.IsRadar || st.IsRecommended {
		return entity.ErrDeleteGuard
	}
	delete(s.rows, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubStoryRepo) ReplaceCategories(_ context.Context, storyID string, categoryIDs []string) error {
	if s.err != nil {
		return s.err
	}
	s.replacedCategories[storyID] = categoryIDs
	return nil
}

func (s *stubStoryRepo) ListSavedBy(_ context.Context, userID string) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.StoryWithRelations
	for _, id := range s.order {
		if s.saved[id+"|"+userID] {
			out = append(out, *s.rows[id])
		}
	}
	return out, nil
}

func (s *stubStoryRepo) IsSavedBy(_ context.Context, storyID, userID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.saved[storyID+"|"+userID], nil
}

func (s *stubStoryRepo) ListAssetURLs(_ context.Context, _ string) ([]string, error) {
	return nil, s.err
}

func (s *stubStoryRepo) published() []repository.StoryWithRelations {
	var out []repository.StoryWithRelations
	for _, id := range s.order {
		if s.rows[id].Story.IsPublished {
			out = append(out, *s.rows[id])
		}
	}
	return out
}
