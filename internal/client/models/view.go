package models

// SortOrder is the direction of a table sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TableSort is the configured sort criteria: a field key and a direction.
type TableSort struct {
	Key   string    `json:"key"`
	Order SortOrder `json:"order"`
}

// DefaultSort orders collections newest first.
func DefaultSort() TableSort {
	return TableSort{Key: "createdAt", Order: SortDesc}
}

// DefaultPageSize is the initial items-per-page for collection views.
const DefaultPageSize = 10

// Pagination is the pagination cursor of a collection view. TotalItems is
// authoritative from the server on fetches and maintained locally on
// create/delete.
type Pagination struct {
	Page         int `json:"page"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

// DefaultPagination starts on page one with the default page size.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, ItemsPerPage: DefaultPageSize}
}
