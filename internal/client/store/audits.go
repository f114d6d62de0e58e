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

// AuditStore caches the audit collection and derives the audits view from
// it. All methods are safe for concurrent use.
type AuditStore struct {
	api api.AuditsAPI
	log logging.Logger

	mu         sync.Mutex
	items      []models.Audit
	filters    models.AuditFilters
	sort       models.TableSort
	pagination models.Pagination
	selected   selection
	loading    bool
	lastError  string
}

// NewAuditStore returns an empty store with default view state.
func NewAuditStore(client api.AuditsAPI, log logging.Logger) *AuditStore {
	return &AuditStore{
		api:        client,
		log:        log,
		items:      []models.Audit{},
		sort:       models.DefaultSort(),
		pagination: models.DefaultPagination(),
		selected:   selection{},
	}
}

// Fetch replaces the cached collection with the server's list for the
// current view state and adopts the server-reported total.
func (s *AuditStore) Fetch(ctx context.Context) error {
	q := s.beginQuery()
	items, pg, err := s.api.ListAudits(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to fetch audits", err)
		return err
	}
	s.items = items
	s.pagination.TotalItems = pg.TotalItems
	if pg.TotalItems == 0 {
		s.pagination.TotalItems = len(items)
	}
	return nil
}

// FetchOne retrieves a single audit by id, refreshing the cached copy when
// the audit is already in the collection.
func (s *AuditStore) FetchOne(ctx context.Context, id string) (*models.Audit, error) {
	s.begin()
	a, err := s.api.GetAudit(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to fetch audit", err)
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == a.ID {
			s.items[i] = *a
			break
		}
	}
	return a, nil
}

// Create submits a new audit and prepends the result. The source variant in
// cfg decides the transport encoding; that dispatch lives in the client.
func (s *AuditStore) Create(ctx context.Context, cfg models.AuditCreation) (*models.Audit, error) {
	s.begin()
	a, err := s.api.CreateAudit(ctx, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to create audit", err)
		return nil, err
	}
	s.items = append([]models.Audit{*a}, s.items...)
	s.pagination.TotalItems++
	return a, nil
}

// Update applies a partial update to an audit already in the collection.
// An unknown id fails locally without calling the server.
func (s *AuditStore) Update(ctx context.Context, id string, upd models.AuditUpdate) (*models.Audit, error) {
	s.mu.Lock()
	if !s.hasLocked(id) {
		s.lastError = "audit not found"
		s.mu.Unlock()
		return nil, fmt.Errorf("audit %s: %w", id, common.ErrNotFound)
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	a, err := s.api.UpdateAudit(ctx, id, upd)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to update audit", err)
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *a
			break
		}
	}
	return a, nil
}

// Delete removes an audit server-side, then from the collection and the
// selection. The collection is untouched when the server call fails.
func (s *AuditStore) Delete(ctx context.Context, id string) error {
	s.begin()
	err := s.api.DeleteAudit(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to delete audit", err)
		return err
	}
	s.items = removeByID(s.items, func(a models.Audit) string { return a.ID }, id)
	s.selected.Remove(id)
	if s.pagination.TotalItems > 0 {
		s.pagination.TotalItems--
	}
	return nil
}

// BulkDelete removes several audits at once and clears the selection.
func (s *AuditStore) BulkDelete(ctx context.Context, ids []string) (int, error) {
	s.begin()
	n, err := s.api.BulkDeleteAudits(ctx, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to delete audits", err)
		return 0, err
	}
	for _, id := range ids {
		s.items = removeByID(s.items, func(a models.Audit) string { return a.ID }, id)
	}
	s.selected = selection{}
	s.pagination.TotalItems = len(s.items)
	return n, nil
}

// NewVersion asks the server to re-run an audit with reviewer feedback and
// extra context. The result is a distinct audit entity, prepended to the
// collection alongside its predecessor.
func (s *AuditStore) NewVersion(ctx context.Context, id, feedback, extraContext string) (*models.Audit, error) {
	s.mu.Lock()
	if !s.hasLocked(id) {
		s.lastError = "audit not found"
		s.mu.Unlock()
		return nil, fmt.Errorf("audit %s: %w", id, common.ErrNotFound)
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	a, err := s.api.NewAuditVersion(ctx, id, feedback, extraContext)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to create audit version", err)
		return nil, err
	}
	s.items = append([]models.Audit{*a}, s.items...)
	s.pagination.TotalItems = len(s.items)
	return a, nil
}

// SetFilters replaces the whole filter set and rewinds to the first page.
func (s *AuditStore) SetFilters(f models.AuditFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.pagination.Page = 1
}

// SetSort replaces the sort criteria. The current page is kept.
func (s *AuditStore) SetSort(ts models.TableSort) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = ts
}

// SetPage moves to the given page.
func (s *AuditStore) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.Page = page
}

// SetPageSize changes the items-per-page. The current page is kept.
func (s *AuditStore) SetPageSize(n int) {
	if n < 1 {
		n = models.DefaultPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.ItemsPerPage = n
}

// ToggleSelect flips the selection state of one audit id.
func (s *AuditStore) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Toggle(id)
}

// SelectAll replaces the selection with exactly the ids on the currently
// visible page.
func (s *AuditStore) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := selection{}
	for _, a := range s.paginatedLocked() {
		sel[a.ID] = struct{}{}
	}
	s.selected = sel
}

// ClearSelection empties the selection.
func (s *AuditStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = selection{}
}

// Raw returns a copy of the cached collection in fetch order.
func (s *AuditStore) Raw() []models.Audit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Audit, len(s.items))
	copy(out, s.items)
	return out
}

// Filtered derives the audits matching the current filters, in the current
// sort order.
func (s *AuditStore) Filtered() []models.Audit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortItems(s.filteredLocked(), s.sort, auditField)
}

// Paginated derives the current page of the filtered, sorted collection.
// When the server already windowed the list, the page slice is the filtered
// list itself.
func (s *AuditStore) Paginated() []models.Audit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginatedLocked()
}

func (s *AuditStore) paginatedLocked() []models.Audit {
	sorted := sortItems(s.filteredLocked(), s.sort, auditField)
	if s.pagination.TotalItems > len(s.items) {
		return sorted
	}
	return paginateItems(sorted, s.pagination.Page, s.pagination.ItemsPerPage)
}

// TotalPages derives the page count over the filtered collection.
func (s *AuditStore) TotalPages() int {
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

// Stats aggregates the raw collection. Each correction contributes one
// count to its severity bucket, so the severity total can exceed Total.
func (s *AuditStore) Stats() models.AuditStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := models.AuditStats{
		Total:        len(s.items),
		BySourceType: map[models.SourceType]int{},
		ByStatus:     map[models.AuditStatus]int{},
		BySeverity:   map[models.Severity]int{},
	}
	for _, a := range s.items {
		st.BySourceType[a.SourceType]++
		st.ByStatus[a.Status]++
		for _, c := range a.Corrections {
			st.BySeverity[c.Severity]++
		}
	}
	return st
}

// RemoteStats asks the server for collection-wide stats. Unlike Stats it
// covers every audit the account owns, not just the fetched window.
func (s *AuditStore) RemoteStats(ctx context.Context) (*models.AuditStats, error) {
	s.begin()

	st, err := s.api.AuditStats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = messageOf("failed to fetch audit stats", err)
		return nil, err
	}
	return st, nil
}

// Filters returns the active filter criteria.
func (s *AuditStore) Filters() models.AuditFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Sort returns the active sort criteria.
func (s *AuditStore) Sort() models.TableSort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// Pagination returns the current pagination cursor.
func (s *AuditStore) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Selected reports whether the given id is selected.
func (s *AuditStore) Selected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Has(id)
}

// SelectedIDs returns the selected ids in no particular order.
func (s *AuditStore) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.IDs()
}

// Loading reports whether an operation is in flight.
func (s *AuditStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the message of the most recent failed operation, empty when
// the last operation succeeded.
func (s *AuditStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError resets the error slot.
func (s *AuditStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *AuditStore) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
}

func (s *AuditStore) beginQuery() api.AuditQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	return api.AuditQuery{
		Filters:      s.filters,
		Sort:         s.sort,
		Page:         s.pagination.Page,
		ItemsPerPage: s.pagination.ItemsPerPage,
	}
}

func (s *AuditStore) hasLocked(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

func (s *AuditStore) filteredLocked() []models.Audit {
	f := s.filters
	return filterItems(s.items, func(a models.Audit) bool {
		if f.Search != "" &&
			!containsFold(a.Name, f.Search) &&
			!containsFold(a.SourceContent, f.Search) &&
			!containsFold(a.CorrectedContent, f.Search) {
			return false
		}
		if f.SourceType != "" && a.SourceType != f.SourceType {
			return false
		}
		if f.DocumentType != "" && a.DocumentType != f.DocumentType {
			return false
		}
		if f.Status != "" && a.Status != f.Status {
			return false
		}
		if f.Severity != "" && !anyCorrection(a, func(c models.Correction) bool { return c.Severity == f.Severity }) {
			return false
		}
		if f.Category != "" && !anyCorrection(a, func(c models.Correction) bool { return c.Category == f.Category }) {
			return false
		}
		return withinDates(a.CreatedAt, f.DateFrom, f.DateTo)
	})
}

func anyCorrection(a models.Audit, match func(models.Correction) bool) bool {
	for _, c := range a.Corrections {
		if match(c) {
			return true
		}
	}
	return false
}

func auditField(a models.Audit, key string) (any, bool) {
	switch key {
	case "name":
		return a.Name, true
	case "sourceType":
		return string(a.SourceType), true
	case "documentType":
		return string(a.DocumentType), true
	case "status":
		return string(a.Status), true
	case "version":
		return a.Version, true
	case "corrections":
		return len(a.Corrections), true
	case "createdAt":
		return a.CreatedAt, true
	case "updatedAt":
		return a.UpdatedAt, true
	}
	return nil, false
}
