// Package query builds inert descriptors for the paginated invoice listing
// and its matching count. Descriptors carry filter/sort/range only; rendering
// them into SQL is the repository's job, with the search pattern always bound
// as a parameter.
package query

import "strings"

// PageSize is the fixed number of invoice rows per listing page.
const PageSize = 6

// ListQuery describes one page of the filtered invoice listing.
type ListQuery struct {
	// NamePattern is the ILIKE pattern for the joined customer name,
	// empty when no filter applies.
	NamePattern string
	SortColumn  string
	SortDesc    bool
	Offset      int
	Limit       int
}

// CountQuery describes the matching-row count for the same filter,
// with no range applied.
type CountQuery struct {
	NamePattern string
}

// Pattern turns a search term into an ILIKE pattern. A term that trims to
// empty means "no filter" and yields "".
func Pattern(search string) string {
	s := strings.TrimSpace(search)
	if s == "" {
		return ""
	}
	return "%" + s + "%"
}

// BuildList builds the descriptor for one listing page. Pages are 1-based;
// anything below 1 is treated as page 1.
func BuildList(search string, page int) ListQuery {
	if page < 1 {
		page = 1
	}
	return ListQuery{
		NamePattern: Pattern(search),
		SortColumn:  "date",
		SortDesc:    true,
		Offset:      (page - 1) * PageSize,
		Limit:       PageSize,
	}
}

// BuildCount builds the descriptor for the total-count query.
func BuildCount(search string) CountQuery {
	return CountQuery{NamePattern: Pattern(search)}
}

// TotalPages derives the page count from a matching-row total:
// ceil(total/PageSize), with 0 rows yielding 0 pages.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
