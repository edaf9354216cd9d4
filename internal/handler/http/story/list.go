package story

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"not-project-backend/internal/common/pagination"
	"not-project-backend/internal/handler/http/requestid"
	"not-project-backend/internal/handler/http/respond"
	"not-project-backend/internal/repository"
	storyUC "not-project-backend/internal/usecase/story"
)

type ListHandler struct {
	Svc           *storyUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists published stories.
// @Summary      List published stories
// @Description  Returns published stories newest first. Supports title search plus borough and category filters, all combinable.
// @Tags         stories
// @Produce      json
// @Param        page       query  int     false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit      query  int     false  "Items per page" default(20) minimum(1) maximum(100)
// @Param        search     query  string  false  "Title substring match"
// @Param        boroughs   query  string  false  "Comma-separated borough list"
// @Param        categories query  string  false  "Comma-separated category IDs"
// @Success      200 {object} pagination.Response[storyUC.PublicStory]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "Internal server error"
// @Router       /stories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)
	start := time.Now()

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.LogError(h.Logger, reqID, params, err, "validation")
		pagination.RecordError("validation")
		pagination.RecordRequest(http.StatusBadRequest, params.Page)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filters := parseFilters(r)

	result, err := h.Svc.List(ctx, filters, params)
	if err != nil {
		pagination.LogError(h.Logger, reqID, params, err, "database")
		pagination.RecordError("database")
		pagination.RecordRequest(http.StatusInternalServerError, params.Page)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	response := pagination.NewResponse(
		storyUC.ProjectAll(result.Data, storyUC.ViewList),
		result.Pagination,
	)

	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", time.Since(start).Seconds())
	pagination.LogResponse(h.Logger, reqID, params, len(response.Data), time.Since(start), http.StatusOK)
	respond.JSON(w, http.StatusOK, response)
}

// parseFilters reads the optional list filters from the query string.
// Empty CSV entries are dropped so "?boroughs=" filters nothing.
func parseFilters(r *http.Request) repository.StoryFilters {
	q := r.URL.Query()
	return repository.StoryFilters{
		Search:      strings.TrimSpace(q.Get("search")),
		Boroughs:    splitCSV(q.Get("boroughs")),
		CategoryIDs: splitCSV(q.Get("categories")),
	}
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
