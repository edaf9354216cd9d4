package pagination

// Response pairs one page of items with the metadata describing where that
// page sits in the full listing. Every paginated endpoint returns this
// shape so clients page stories and categories the same way.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps a page of items and its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
