package story_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"not-project-backend/internal/handler/http/story"
	storyUC "not-project-backend/internal/usecase/story"
)

/* ───────── test cases ───────── */

func TestRadarHandler_CurrentRadar(t *testing.T) {
	stub := newStubStoryRepo()
	stub.add(newRow(storyID1, "Regular Story", true))
	featured := newRow(storyID2, "Featured Story", true)
	featured.Story.IsRadar = true
	stub.add(featured)

	handler := story.RadarHandler{Svc: &storyUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/stories/radar", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result storyUC.PublicStory
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.ID != storyID2 {
		t.Errorf("result.ID = %q, want %q", result.ID, storyID2)
	}
	if result.IsRadar == nil || !*result.IsRadar {
		t.Error("radar story must carry isRadar=true in detail view")
	}
}

func TestRadarHandler_AutoSelect(t *testing.T) {
	// No story holds the slot; a published one gets promoted on read,
	// preferring the recommended set.
	stub := newStubStoryRepo()
	stub.add(newRow(storyID1, "Plain Story", true))
	recommended := newRow(storyID2, "Recommended Story", true)
	recommended.Story.IsRecommended = true
	stub.add(recommended)

	handler := story.RadarHandler{Svc: &storyUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/stories/radar", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result storyUC.PublicStory
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.ID != storyID2 {
		t.Errorf("auto-select picked %q, want recommended story %q", result.ID, storyID2)
	}
	if !stub.rows[storyID2].Story.IsRadar {
		t.Error("auto-selected story must be flagged as radar in storage")
	}
}

func TestRadarHandler_NoPublishedStory(t *testing.T) {
	stub := newStubStoryRepo()
	stub.add(newRow(storyID1, "Draft Only", false))

	handler := story.RadarHandler{Svc: &storyUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/stories/radar", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestRadarHandler_DatabaseError(t *testing.T) {
	stub := newStubStoryRepo()
	stub.err = errors.New("connection refused")

	handler := story.RadarHandler{Svc: &storyUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/stories/radar", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestRadarPromoteHandler_Success(t *testing.T) {
	stub := newStubStoryRepo()
	old := newRow(storyID1, "Old Radar", true)
	old.Story.IsRadar = true
	stub.add(old)
	stub.add(newRow(storyID2, "New Radar", true))

	handler := story.RadarPromoteHandler{Svc: &storyUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodPatch, "/stories/radar/"+storyID2, nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if stub.rows[storyID1].Story.IsRadar {
		t.Error("previous radar story must be demoted")
	}
	if !stub.rows[storyID2].Story.IsRadar {
		t.Error("target story must hold the radar slot")
	}
}

func TestRadarPromoteHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(*stubStoryRepo)
		wantStatus int
	}{
		{
			name:       "unpublished target",
			path:       "/stories/radar/" + storyID1,
			setup:      func(s *stubStoryRepo) { s.add(newRow(storyID1, "Draft", false)) },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing target",
			path:       "/stories/radar/" + absentID,
			setup:      func(s *stubStoryRepo) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			path:       "/stories/radar/not-a-uuid",
			setup:      func(s *stubStoryRepo) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStubStoryRepo()
			tt.setup(stub)
			handler := story.RadarPromoteHandler{Svc: &storyUC.Service{Repo: stub}}

			req := httptest.NewRequest(http.MethodPatch, tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status code = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
