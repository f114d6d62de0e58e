package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/aGautrain/legeclair/internal/client/api"
	"github.com/aGautrain/legeclair/internal/client/models"
	"github.com/aGautrain/legeclair/internal/common"
	"github.com/aGautrain/legeclair/internal/logging"
)

// DocumentStore caches the document collection and derives the documents
// view from it. All methods are safe for concurrent use.
type DocumentStore struct {
	api api.DocumentsAPI
	log logging.Logger

	mu         sync.Mutex
	items      []models.Document
	filters    models.DocumentFilters
	sort       models.TableSort
	pagination models.Pagination
	selected   selection
	loading    bool
	lastError  string
}

// NewDocumentStore returns an empty store with default view state.
func NewDocumentStore(client api.DocumentsAPI, log logging.Logger) *DocumentStore {
	return &DocumentStore{
		api:        client,
		log:        log,
		items:      []models.Document{},
		sort:       models.DefaultSort(),
		pagination: models.DefaultPagination(),
		selected:   selection{},
	}
}

// Fetch replaces the cached collection with the server's list for the
// current view state and adopts the server-reported total.
func (s *DocumentStore) Fetch(ctx context.Context) error {
	q := s.beginQuery()
	items, pg, err := s.api.ListDocuments(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to fetch documents", err)
		return err
	}
	s.items = items
	s.pagination.TotalItems = pg.TotalItems
	if pg.TotalItems == 0 {
		s.pagination.TotalItems = len(items)
	}
	return nil
}

// FetchOne retrieves a single document by id, refreshing the cached copy
// when the document is already in the collection.
func (s *DocumentStore) FetchOne(ctx context.Context, id string) (*models.Document, error) {
	s.begin()
	doc, err := s.api.GetDocument(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to fetch document", err)
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == doc.ID {
			s.items[i] = *doc
			break
		}
	}
	return doc, nil
}

// Create asks the server to generate a new document and prepends the result,
// keeping the collection most-recent-first.
func (s *DocumentStore) Create(ctx context.Context, cfg models.GenerationConfig) (*models.Document, error) {
	s.begin()
	doc, err := s.api.CreateDocument(ctx, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to create document", err)
		return nil, err
	}
	s.items = append([]models.Document{*doc}, s.items...)
	s.pagination.TotalItems++
	return doc, nil
}

// Update applies a partial update to a document already in the collection.
// An unknown id fails locally without calling the server.
func (s *DocumentStore) Update(ctx context.Context, id string, upd models.DocumentUpdate) (*models.Document, error) {
	s.mu.Lock()
	if !s.hasLocked(id) {
		s.lastError = "document not found"
		s.mu.Unlock()
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	doc, err := s.api.UpdateDocument(ctx, id, upd)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to update document", err)
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *doc
			break
		}
	}
	return doc, nil
}

// Delete removes a document server-side, then from the collection and the
// selection. The collection is untouched when the server call fails.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	s.begin()
	err := s.api.DeleteDocument(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to delete document", err)
		return err
	}
	s.items = removeByID(s.items, func(d models.Document) string { return d.ID }, id)
	s.selected.Remove(id)
	if s.pagination.TotalItems > 0 {
		s.pagination.TotalItems--
	}
	return nil
}

// BulkDelete removes several documents at once and clears the selection.
func (s *DocumentStore) BulkDelete(ctx context.Context, ids []string) (int, error) {
	s.begin()
	n, err := s.api.BulkDeleteDocuments(ctx, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to delete documents", err)
		return 0, err
	}
	for _, id := range ids {
		s.items = removeByID(s.items, func(d models.Document) string { return d.ID }, id)
	}
	s.selected = selection{}
	s.pagination.TotalItems = len(s.items)
	return n, nil
}

// SetFilters replaces the whole filter set and rewinds to the first page.
func (s *DocumentStore) SetFilters(f models.DocumentFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.pagination.Page = 1
}

// SetSort replaces the sort criteria. The current page is kept.
func (s *DocumentStore) SetSort(ts models.TableSort) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = ts
}

// SetPage moves to the given page. Out-of-range pages derive empty views
// rather than failing.
func (s *DocumentStore) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.Page = page
}

// SetPageSize changes the items-per-page. The current page is kept.
func (s *DocumentStore) SetPageSize(n int) {
	if n < 1 {
		n = models.DefaultPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.ItemsPerPage = n
}

// ToggleSelect flips the selection state of one document id.
func (s *DocumentStore) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Toggle(id)
}

// SelectAll replaces the selection with exactly the ids on the currently
// visible page.
func (s *DocumentStore) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := selection{}
	for _, d := range s.paginatedLocked() {
		sel[d.ID] = struct{}{}
	}
	s.selected = sel
}

// ClearSelection empties the selection.
func (s *DocumentStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = selection{}
}

// Raw returns a copy of the cached collection in fetch order.
func (s *DocumentStore) Raw() []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Document, len(s.items))
	copy(out, s.items)
	return out
}

// Filtered derives the documents matching the current filters, in the
// current sort order.
func (s *DocumentStore) Filtered() []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortItems(s.filteredLocked(), s.sort, documentField)
}

// Paginated derives the current page of the filtered, sorted collection.
// When the server already windowed the list, the page slice is the filtered
// list itself.
func (s *DocumentStore) Paginated() []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginatedLocked()
}

func (s *DocumentStore) paginatedLocked() []models.Document {
	sorted := sortItems(s.filteredLocked(), s.sort, documentField)
	if s.pagination.TotalItems > len(s.items) {
		return sorted
	}
	return paginateItems(sorted, s.pagination.Page, s.pagination.ItemsPerPage)
}

// TotalPages derives the page count over the filtered collection.
func (s *DocumentStore) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.filteredLocked())
	if s.pagination.TotalItems > len(s.items) {
		n = s.pagination.TotalItems
	}
	per := s.pagination.ItemsPerPage
	if per < 1 {
		return 0
	}
	return (n + per - 1) / per
}

// Stats aggregates the raw collection by type and status.
func (s *DocumentStore) Stats() models.DocumentStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := models.DocumentStats{
		Total:    len(s.items),
		ByType:   map[models.DocumentType]int{},
		ByStatus: map[models.DocumentStatus]int{},
	}
	for _, d := range s.items {
		st.ByType[d.Type]++
		st.ByStatus[d.Status]++
	}
	return st
}

// RemoteStats asks the server for collection-wide stats. Unlike Stats it
// covers every document the account owns, not just the fetched window.
func (s *DocumentStore) RemoteStats(ctx context.Context) (*models.DocumentStats, error) {
	s.begin()

	st, err := s.api.DocumentStats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to fetch document stats", err)
		return nil, err
	}
	return st, nil
}

// Filters returns the active filter criteria.
func (s *DocumentStore) Filters() models.DocumentFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Sort returns the active sort criteria.
func (s *DocumentStore) Sort() models.TableSort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// Pagination returns the current pagination cursor.
func (s *DocumentStore) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Selected reports whether the given id is selected.
func (s *DocumentStore) Selected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Has(id)
}

// SelectedIDs returns the selected ids in no particular order.
func (s *DocumentStore) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.IDs()
}

// Loading reports whether an operation is in flight.
func (s *DocumentStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the message of the most recent failed operation, empty when
// the last operation succeeded.
func (s *DocumentStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError resets the error slot.
func (s *DocumentStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *DocumentStore) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
}

func (s *DocumentStore) beginQuery() api.DocumentQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	return api.DocumentQuery{
		Filters:      s.filters,
		Sort:         s.sort,
		Page:         s.pagination.Page,
		ItemsPerPage: s.pagination.ItemsPerPage,
	}
}

func (s *DocumentStore) hasLocked(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

func (s *DocumentStore) filteredLocked() []models.Document {
	f := s.filters
	return filterItems(s.items, func(d models.Document) bool {
		if f.Search != "" && !containsFold(d.Name, f.Search) && !containsFold(d.Content, f.Search) {
			return false
		}
		if f.Type != "" && d.Type != f.Type {
			return false
		}
		if f.Status != "" && d.Status != f.Status {
			return false
		}
		return withinDates(d.CreatedAt, f.DateFrom, f.DateTo)
	})
}

func documentField(d models.Document, key string) (any, bool) {
	switch key {
	case "name":
		return d.Name, true
	case "type":
		return string(d.Type), true
	case "status":
		return string(d.Status), true
	case "version":
		return d.Version, true
	case "createdAt":
		return d.CreatedAt, true
	case "updatedAt":
		return d.UpdatedAt, true
	}
	return nil, false
}
