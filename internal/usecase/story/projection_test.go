package story_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
	"not-project-backend/internal/usecase/story"
)

func sampleRow() *repository.StoryWithRelations {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	return &repository.StoryWithRelations{
		Story: &entity.Story{
			ID:            "s1",
			AuthorID:      "u1",
			Title:         "Harbor Lights",
			Content:       "<p>body</p>",
			Summary:       "boats at dusk",
			Borough:       "brooklyn",
			Thumbnail:     "https://cdn.example.com/images/harbor-thumb.jpg",
			IsPublished:   true,
			IsRecommended: true,
			IsTrashed:     true,
			CreatedAt:     now,
			UpdatedAt:     now.Add(time.Hour),
		},
		Categories: []entity.Category{
			{ID: "c1", Name: "Waterfront", Description: "piers and ferries"},
		},
		AuthorFirstName: "Dana",
		AuthorLastName:  "Whitfield",
	}
}

func TestProject_ListView(t *testing.T) {
	got := story.Project(sampleRow(), story.ViewList, nil)

	want := story.PublicStory{
		ID:          "s1",
		AuthorID:    "u1",
		Title:       "Harbor Lights",
		Summary:     "boats at dusk",
		Borough:     "brooklyn",
		Thumbnail:   "https://cdn.example.com/images/harbor-thumb.jpg",
		IsPublished: true,
		CreatedAt:   time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
		Categories: []story.PublicCategory{
			{ID: "c1", Name: "Waterfront", Description: "piers and ferries"},
		},
		Author: story.PublicAuthor{FirstName: "Dana", LastName: "Whitfield"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Project() mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_DetailView(t *testing.T) {
	saved := true
	got := story.Project(sampleRow(), story.ViewDetail, &saved)

	if got.Content != "<p>body</p>" {
		t.Errorf("Content = %q, want body", got.Content)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want set after CreatedAt", got.UpdatedAt)
	}
	if got.IsRecommended == nil || !*got.IsRecommended {
		t.Error("IsRecommended should be exposed in detail view")
	}
	if got.IsSaved == nil || !*got.IsSaved {
		t.Error("IsSaved should carry the viewer's bookmark state")
	}
}

func TestProject_NeverExposesTrashFlag(t *testing.T) {
	got := story.Project(sampleRow(), story.ViewDetail, nil)

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(strings.ToLower(string(raw)), "trash") {
		t.Errorf("projection leaked the trash flag: %s", raw)
	}
	if strings.Contains(string(raw), "isSaved") {
		t.Errorf("anonymous detail view must omit isSaved: %s", raw)
	}
}

func TestProject_ListViewOmitsDetailFields(t *testing.T) {
	got := story.Project(sampleRow(), story.ViewList, nil)

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"content", "updatedAt", "isRadar", "isRecommended"} {
		if strings.Contains(string(raw), field) {
			t.Errorf("list view leaked %q: %s", field, raw)
		}
	}
}

func TestProjectAll(t *testing.T) {
	rows := []repository.StoryWithRelations{*sampleRow(), *sampleRow()}
	got := story.ProjectAll(rows, story.ViewList)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Content != "" {
		t.Error("list projection must not carry content")
	}
}
