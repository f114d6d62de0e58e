package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/aGautrain/legeclair/internal/client/models"
)

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProfileUpdate is a partial profile update; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// AuthResult pairs the authenticated user with their bearer token.
type AuthResult struct {
	User  models.User
	Token string
}

// DocumentQuery carries filter, sort and pagination state as list-endpoint
// query parameters.
type DocumentQuery struct {
	Filters      models.DocumentFilters
	Sort         models.TableSort
	Page         int
	ItemsPerPage int
}

// AuditQuery is the audits counterpart of DocumentQuery.
type AuditQuery struct {
	Filters      models.AuditFilters
	Sort         models.TableSort
	Page         int
	ItemsPerPage int
}

// AuthAPI is the authentication surface consumed by the session store.
type AuthAPI interface {
	Register(ctx context.Context, reg RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error)
}

// DocumentsAPI is the surface consumed by the document collection store.
type DocumentsAPI interface {
	ListDocuments(ctx context.Context, q DocumentQuery) ([]models.Document, models.Pagination, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	CreateDocument(ctx context.Context, cfg models.GenerationConfig) (*models.Document, error)
	UpdateDocument(ctx context.Context, id string, upd models.DocumentUpdate) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	BulkDeleteDocuments(ctx context.Context, ids []string) (int, error)
	DocumentStats(ctx context.Context) (*models.DocumentStats, error)
}

// AuditsAPI is the surface consumed by the audit collection store.
type AuditsAPI interface {
	ListAudits(ctx context.Context, q AuditQuery) ([]models.Audit, models.Pagination, error)
	GetAudit(ctx context.Context, id string) (*models.Audit, error)
	CreateAudit(ctx context.Context, cfg models.AuditCreation) (*models.Audit, error)
	UpdateAudit(ctx context.Context, id string, upd models.AuditUpdate) (*models.Audit, error)
	DeleteAudit(ctx context.Context, id string) error
	BulkDeleteAudits(ctx context.Context, ids []string) (int, error)
	NewAuditVersion(ctx context.Context, id, feedback, newContext string) (*models.Audit, error)
	AuditStats(ctx context.Context) (*models.AuditStats, error)
}

// Client is the full backend contract.
type Client interface {
	AuthAPI
	DocumentsAPI
	AuditsAPI
	Ping(ctx context.Context) error
	Close() error
}

func (q DocumentQuery) values() url.Values {
	v := url.Values{}
	addPageSort(v, q.Page, q.ItemsPerPage, q.Sort)
	addString(v, "search", q.Filters.Search)
	addString(v, "type", string(q.Filters.Type))
	addString(v, "status", string(q.Filters.Status))
	addTime(v, "dateFrom", q.Filters.DateFrom)
	addTime(v, "dateTo", q.Filters.DateTo)
	return v
}

func (q AuditQuery) values() url.Values {
	v := url.Values{}
	addPageSort(v, q.Page, q.ItemsPerPage, q.Sort)
	addString(v, "search", q.Filters.Search)
	addString(v, "sourceType", string(q.Filters.SourceType))
	addString(v, "documentType", string(q.Filters.DocumentType))
	addString(v, "status", string(q.Filters.Status))
	addString(v, "severity", string(q.Filters.Severity))
	addString(v, "category", string(q.Filters.Category))
	addTime(v, "dateFrom", q.Filters.DateFrom)
	addTime(v, "dateTo", q.Filters.DateTo)
	return v
}

func addPageSort(v url.Values, page, perPage int, sort models.TableSort) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("itemsPerPage", strconv.Itoa(perPage))
	}
	addString(v, "sortKey", sort.Key)
	addString(v, "sortOrder", string(sort.Order))
}

func addString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func addTime(v url.Values, key string, t *time.Time) {
	if t != nil {
		v.Set(key, t.UTC().Format(time.RFC3339))
	}
}
