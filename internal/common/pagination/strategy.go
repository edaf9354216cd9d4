package pagination

// PaginationStrategy abstracts how a page maps onto a query, so handlers
// and services stay unchanged if offset paging is ever swapped for a
// cursor scheme.
type PaginationStrategy interface {
	// CalculateQuery translates page parameters into query parameters.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata derives response metadata from the query outcome.
	// hasMore only matters to cursor schemes; offset paging ignores it.
	BuildMetadata(params Params, total int64, hasMore bool) Metadata
}

// QueryParams carries whatever a strategy needs pushed into the query.
// Offset paging uses Offset and Limit; the pointer fields are reserved for
// cursor and keyset schemes.
type QueryParams struct {
	Offset int
	Limit  int
	Cursor *string
	After  *string
}

// OffsetStrategy is the scheme in use: plain OFFSET/LIMIT against the
// stories table.
type OffsetStrategy struct{}

func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

func (s OffsetStrategy) BuildMetadata(params Params, total int64, hasMore bool) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}

// A cursor strategy would use opaque base64(created_at + story_id)
// cursors and a hasMore flag instead of total_pages. Not needed while the
// archive stays small enough for OFFSET scans.
