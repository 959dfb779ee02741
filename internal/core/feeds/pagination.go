package feeds

import "strconv"

// PageSize is the fixed number of posts per page across all feeds.
const PageSize = 10

// Page is a fixed-size slice of an ordered result sequence.
// Number is 1-based.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Next returns the following page number, for rendering pager links.
func (p Page[T]) Next() int { return p.Number + 1 }

// Previous returns the preceding page number, for rendering pager links.
func (p Page[T]) Previous() int { return p.Number - 1 }

// ParsePage maps an untrusted query parameter to a page number.
// Anything missing, non-numeric or non-positive becomes page 1; upper-bound
// clamping happens in Paginate once the sequence length is known.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate slices items into the requested page. Out-of-range page numbers
// clamp to the nearest valid page rather than erroring, so stale links keep
// working. An empty sequence yields a single empty page.
func Paginate[T any](items []T, page int) Page[T] {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
