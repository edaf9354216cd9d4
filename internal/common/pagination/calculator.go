package pagination

// CalculateOffset converts a 1-based page number into a database OFFSET.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns how many pages are needed for total rows.
// An empty result set still reports one page so clients always have a
// valid page to sit on.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	// Ceiling division.
	return int((total + int64(limit) - 1) / int64(limit))
}
