package post

import "strconv"

const (
	// PageSize is fixed; clients cannot change it.
	PageSize = 10

	previewLimit  = 200
	previewMarker = "..."
)

// ResolvePage parses the raw page query parameter. An absent parameter
// means page 1; anything that is not a base-10 integer >= 1 is rejected.
func ResolvePage(raw string) (int64, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// PageOffset converts a 1-based page number into a skip count.
func PageOffset(page int64) int64 {
	return (page - 1) * PageSize
}

// LastPage is ceil(count/PageSize); 0 when the collection is empty.
func LastPage(count int64) int64 {
	return (count + PageSize - 1) / PageSize
}

// Preview renders a body for list views: bodies longer than 200
// characters are cut to the first 200 plus a marker, shorter ones pass
// through untouched. The stored value is never modified.
func Preview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLimit {
		return body
	}
	return string(runes[:previewLimit]) + previewMarker
}
