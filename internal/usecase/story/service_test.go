package story_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"not-project-backend/internal/common/pagination"
	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/infra/image"
	"not-project-backend/internal/repository"
	"not-project-backend/internal/usecase/asset"
	storyUC "not-project-backend/internal/usecase/story"
)

/* ───────── stubs ───────── */

// minimal in-memory StoryRepository
type stubRepo struct {
	data       map[string]*entity.Story
	categories map[string][]string
	saved      map[string]bool // "storyID|userID"
	err        error           // force an error when set

	promoteCandidateErrs []error  // queued results for PromoteRadarCandidate
	findRadarEmptyFirst  int      // make FindRadar report no radar for the first N calls
	writes               []string // lifecycle write methods reached, in order
}

func newStub() *stubRepo {
	return &stubRepo{
		data:       map[string]*entity.Story{},
		categories: map[string][]string{},
		saved:      map[string]bool{},
	}
}

func (s *stubRepo) Create(_ context.Context, st *entity.Story) error {
	if s.err != nil {
		return s.err
	}
	s.data[st.ID] = st
	return nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Story, error) {
	return s.data[id], s.err
}

func (s *stubRepo) wrap(st *entity.Story) *repository.StoryWithRelations {
	return &repository.StoryWithRelations{Story: st, Categories: []entity.Category{}}
}

func (s *stubRepo) GetWithRelations(_ context.Context, id string) (*repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	st, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return s.wrap(st), nil
}

func (s *stubRepo) List(_ context.Context, _ repository.StoryFilters, _, _ int) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.StoryWithRelations
	for _, st := range s.data {
		if st.IsPublished {
			out = append(out, *s.wrap(st))
		}
	}
	return out, nil
}

func (s *stubRepo) Count(_ context.Context, _ repository.StoryFilters) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, st := range s.data {
		if st.IsPublished {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListHidden(_ context.Context) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.StoryWithRelations
	for _, st := range s.data {
		if !st.IsPublished {
			out = append(out, *s.wrap(st))
		}
	}
	return out, nil
}

func (s *stubRepo) ListRecommended(_ context.Context, limit int) ([]repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.StoryWithRelations
	for _, st := range s.data {
		if st.IsRecommended && len(out) < limit {
			out = append(out, *s.wrap(st))
		}
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, st *entity.Story) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[st.ID]; !ok {
		return entity.ErrNotFound
	}
	s.data[st.ID] = st
	return nil
}

func (s *stubRepo) SetPublished(_ context.Context, id string, published bool) error {
	s.writes = append(s.writes, "SetPublished")
	if s.err != nil {
		return s.err
	}
	st, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	if !published && st.IsRadar {
		return entity.ErrRadarConflict
	}
	st.IsPublished = published
	return nil
}

func (s *stubRepo) SetRecommended(_ context.Context, id string, recommended bool) error {
	if s.err != nil {
		return s.err
	}
	st, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	st.IsRecommended = recommended
	return nil
}

func (s *stubRepo) PromoteRadar(_ context.Context, id string) error {
	s.writes = append(s.writes, "PromoteRadar")
	if s.err != nil {
		return s.err
	}
	st, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	if !st.IsPublished {
		return entity.ErrNotPublished
	}
	for _, other := range s.data {
		other.IsRadar = false
	}
	st.IsRadar = true
	return nil
}

func (s *stubRepo) FindRadar(_ context.Context) (*repository.StoryWithRelations, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.findRadarEmptyFirst > 0 {
		s.findRadarEmptyFirst--
		return nil, nil
	}
	for _, st := range s.data {
		if st.IsPublished && st.IsRadar {
			return s.wrap(st), nil
		}
	}
	return nil, nil
}

func (s *stubRepo) PromoteRadarCandidate(_ context.Context) (*repository.StoryWithRelations, error) {
	if len(s.promoteCandidateErrs) > 0 {
		err := s.promoteCandidateErrs[0]
		s.promoteCandidateErrs = s.promoteCandidateErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	var pick *entity.Story
	for _, st := range s.data {
		if !st.IsPublished {
			continue
		}
		if pick == nil || (st.IsRecommended && !pick.IsRecommended) {
			pick = st
		}
	}
	if pick == nil {
		return nil, nil
	}
	pick.IsRadar = true
	return s.wrap(pick), nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.writes = append(s.writes, "Delete")
	if s.err != nil {
		return s.err
	}
	st, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	if st.IsPublished || st.IsRadar || st.IsRecommended {
		return entity.ErrDeleteGuard
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) ReplaceCategories(_ context.Context, storyID string, categoryIDs []string) error {
	if s.err != nil {
		return s.err
	}
	for _, id := range categoryIDs {
		if id == "ghost" {
			return entity.ErrCategoryNotFound
		}
	}
	s.categories[storyID] = categoryIDs
	return nil
}

func (s *stubRepo) ListSavedBy(_ context.Context, _ string) ([]repository.StoryWithRelations, error) {
	return nil, s.err
}

func (s *stubRepo) IsSavedBy(_ context.Context, storyID, userID string) (bool, error) {
	return s.saved[storyID+"|"+userID], s.err
}

func (s *stubRepo) ListAssetURLs(_ context.Context, _ string) ([]string, error) {
	return nil, s.err
}

// memStore records uploads in memory; the pipeline itself is exercised in
// its own package tests.
type memStore struct{}

func (memStore) Put(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}
func (memStore) List(_ context.Context, _ string) ([]string, error) { return nil, nil }
func (memStore) Delete(_ context.Context, _ string) error           { return nil }
func (memStore) URL(key string) string                              { return "https://cdn.example.com/" + key }
func (memStore) KeyFromURL(url string) (string, bool) {
	return strings.TrimPrefix(url, "https://cdn.example.com/"), strings.HasPrefix(url, "https://cdn.example.com/")
}

func paginationParams(page, limit int) pagination.Params {
	return pagination.Params{Page: page, Limit: limit}
}

func newService(repo *stubRepo) *storyUC.Service {
	return &storyUC.Service{
		Repo:   repo,
		Assets: asset.NewPipeline(memStore{}, image.NewNormalizer(1)),
	}
}

/* ───────── Create / Edit ───────── */

func TestService_Create(t *testing.T) {
	repo := newStub()
	svc := newService(repo)

	story, err := svc.Create(context.Background(), storyUC.CreateInput{
		AuthorID:    "u1",
		Title:       "Harbor lights",
		Content:     "<p>body</p>",
		Summary:     "short",
		Borough:     "Brooklyn",
		CategoryIDs: []string{"c1"},
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if story.ID == "" || !story.IsPublished {
		t.Fatalf("story = %+v", story)
	}
	if story.Borough != "brooklyn" {
		t.Fatalf("Borough = %q, want normalized lowercase", story.Borough)
	}
	if got := repo.categories[story.ID]; len(got) != 1 || got[0] != "c1" {
		t.Fatalf("categories = %v", got)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newService(newStub())

	var vErr *entity.ValidationError
	_, err := svc.Create(context.Background(), storyUC.CreateInput{AuthorID: "u1", Borough: "brooklyn"})
	if !errors.As(err, &vErr) || vErr.Field != "title" {
		t.Fatalf("err=%v, want title validation error", err)
	}

	_, err = svc.Create(context.Background(), storyUC.CreateInput{AuthorID: "u1", Title: "t", Borough: "atlantis"})
	if !errors.As(err, &vErr) || vErr.Field != "borough" {
		t.Fatalf("err=%v, want borough validation error", err)
	}
}

func TestService_Create_UnknownCategory(t *testing.T) {
	svc := newService(newStub())

	_, err := svc.Create(context.Background(), storyUC.CreateInput{
		AuthorID: "u1", Title: "t", Borough: "queens", CategoryIDs: []string{"ghost"},
	})
	if !errors.Is(err, entity.ErrCategoryNotFound) {
		t.Fatalf("err=%v, want ErrCategoryNotFound", err)
	}
}

func TestService_Edit(t *testing.T) {
	repo := newStub()
	st := entity.NewStory("s1", "u1", "Old title", "<p>old</p>", "sum", "queens", "")
	repo.data["s1"] = st
	svc := newService(repo)

	newTitle := "New title"
	got, err := svc.Edit(context.Background(), storyUC.EditInput{ID: "s1", Title: &newTitle})
	if err != nil {
		t.Fatalf("Edit err=%v", err)
	}
	if got.Title != "New title" || got.Content != "<p>old</p>" {
		t.Fatalf("story = %+v", got)
	}
}

func TestService_Edit_NotFound(t *testing.T) {
	svc := newService(newStub())

	_, err := svc.Edit(context.Background(), storyUC.EditInput{ID: "missing"})
	if !errors.Is(err, storyUC.ErrStoryNotFound) {
		t.Fatalf("err=%v, want ErrStoryNotFound", err)
	}
}

func TestService_Edit_ClearCategories(t *testing.T) {
	repo := newStub()
	repo.data["s1"] = entity.NewStory("s1", "u1", "t", "", "", "bronx", "")
	repo.categories["s1"] = []string{"c1", "c2"}
	svc := newService(repo)

	_, err := svc.Edit(context.Background(), storyUC.EditInput{ID: "s1", CategoryIDs: []string{}})
	if err != nil {
		t.Fatalf("Edit err=%v", err)
	}
	if got := repo.categories["s1"]; len(got) != 0 {
		t.Fatalf("categories = %v, want empty", got)
	}
}

/* ───────── reads ───────── */

func TestService_Get(t *testing.T) {
	repo := newStub()
	repo.data["s1"] = entity.NewStory("s1", "u1", "t", "", "", "queens", "")
	svc := newService(repo)

	got, err := svc.Get(context.Background(), "s1")
	if err != nil || got.Story.ID != "s1" {
		t.Fatalf("Get got=%+v err=%v", got, err)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, storyUC.ErrStoryNotFound) {
		t.Fatalf("err=%v, want ErrStoryNotFound", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, storyUC.ErrInvalidStoryID) {
		t.Fatalf("err=%v, want ErrInvalidStoryID", err)
	}
}

func TestService_Detail(t *testing.T) {
	repo := newStub()
	repo.data["s1"] = entity.NewStory("s1", "u1", "t", "", "", "queens", "")
	repo.saved["s1|u2"] = true
	svc := newService(repo)

	// Anonymous viewer: no saved state.
	got, saved, err := svc.Detail(context.Background(), "s1", "")
	if err != nil || got.Story.ID != "s1" {
		t.Fatalf("Detail got=%+v err=%v", got, err)
	}
	if saved != nil {
		t.Fatalf("saved = %v, want nil for anonymous viewer", saved)
	}

	// Identified viewer gets their bookmark state.
	_, saved, err = svc.Detail(context.Background(), "s1", "u2")
	if err != nil || saved == nil || !*saved {
		t.Fatalf("saved=%v err=%v, want true", saved, err)
	}
	_, saved, err = svc.Detail(context.Background(), "s1", "u3")
	if err != nil || saved == nil || *saved {
		t.Fatalf("saved=%v err=%v, want false", saved, err)
	}
}

func TestService_Detail_Unpublished(t *testing.T) {
	repo := newStub()
	draft := entity.NewStory("s1", "u1", "t", "", "", "queens", "")
	draft.IsPublished = false
	repo.data["s1"] = draft
	svc := newService(repo)

	if _, _, err := svc.Detail(context.Background(), "s1", ""); !errors.Is(err, storyUC.ErrStoryNotFound) {
		t.Fatalf("err=%v, want ErrStoryNotFound for draft", err)
	}
}

func TestService_List_Pagination(t *testing.T) {
	repo := newStub()
	repo.data["s1"] = entity.NewStory("s1", "u1", "a", "", "", "queens", "")
	repo.data["s2"] = entity.NewStory("s2", "u1", "b", "", "", "queens", "")
	svc := newService(repo)

	result, err := svc.List(context.Background(), repository.StoryFilters{},
		paginationParams(1, 20))
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if result.Pagination.Total != 2 || result.Pagination.TotalPages != 1 {
		t.Fatalf("pagination = %+v", result.Pagination)
	}
}

func TestService_Hidden(t *testing.T) {
	repo := newStub()
	hidden := entity.NewStory("s1", "u1", "t", "", "", "queens", "")
	hidden.IsPublished = false
	repo.data["s1"] = hidden
	repo.data["s2"] = entity.NewStory("s2", "u1", "t2", "", "", "queens", "")
	svc := newService(repo)

	got, err := svc.Hidden(context.Background())
	if err != nil || len(got) != 1 || got[0].Story.ID != "s1" {
		t.Fatalf("Hidden got=%v err=%v", got, err)
	}
}
