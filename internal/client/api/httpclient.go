package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/aGautrain/legeclair/internal/client/models"
	"github.com/aGautrain/legeclair/internal/common"
	"github.com/aGautrain/legeclair/internal/logging"
)

// DefaultRequestTimeout matches the backend's fixed request budget.
const DefaultRequestTimeout = 10 * time.Second

// auditFileField is the multipart field name the backend expects the
// uploaded document under.
const auditFileField = "document"

// TokenFunc returns the current bearer token, or "" when no session is
// persisted. Typically backed by the storage read chain.
type TokenFunc func(ctx context.Context) string

// HTTPClient implements Client over the backend's JSON REST API.
type HTTPClient struct {
	baseURL        string
	httpc          *http.Client
	tokens         TokenFunc
	onUnauthorized func(context.Context)
	log            logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (e.g. to change the
// request timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.httpc = h }
}

// WithTokenFunc installs the bearer-token source.
func WithTokenFunc(f TokenFunc) Option {
	return func(c *HTTPClient) { c.tokens = f }
}

// WithUnauthorizedHook installs the reaction to a 401 response; the hook is
// expected to wipe the persisted session and route the UI to the login page.
func WithUnauthorizedHook(f func(context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = f }
}

// WithLogger installs a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:3000/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: DefaultRequestTimeout},
		tokens:  func(context.Context) string { return "" },
		log:     logging.NewTextLogger(io.Discard, "info"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// Ping checks backend liveness.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// ---- auth ----

func (c *HTTPClient) Register(ctx context.Context, reg RegisterRequest) (*AuthResult, error) {
	var data struct {
		User  wireUser `json:"user"`
		Token string   `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &data); err != nil {
		return nil, err
	}
	return &AuthResult{User: data.User.toModel(), Token: data.Token}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var data struct {
		User  wireUser `json:"user"`
		Token string   `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &data); err != nil {
		return nil, err
	}
	return &AuthResult{User: data.User.toModel(), Token: data.Token}, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var data struct {
		User wireUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &data); err != nil {
		return nil, err
	}
	u := data.User.toModel()
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	var data struct {
		User wireUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, upd, &data); err != nil {
		return nil, err
	}
	u := data.User.toModel()
	return &u, nil
}

// ---- documents ----

func (c *HTTPClient) ListDocuments(ctx context.Context, q DocumentQuery) ([]models.Document, models.Pagination, error) {
	var data listPayload[wireDocument]
	if err := c.do(ctx, http.MethodGet, "/documents", q.values(), nil, &data); err != nil {
		return nil, models.Pagination{}, err
	}
	docs := make([]models.Document, 0, len(data.Data))
	for _, w := range data.Data {
		docs = append(docs, w.toModel())
	}
	return docs, data.Pagination.toModel(), nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var data struct {
		Document wireDocument `json:"document"`
	}
	if err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, nil, &data); err != nil {
		return nil, err
	}
	d := data.Document.toModel()
	return &d, nil
}

func (c *HTTPClient) CreateDocument(ctx context.Context, cfg models.GenerationConfig) (*models.Document, error) {
	var data struct {
		Document wireDocument `json:"document"`
	}
	if err := c.do(ctx, http.MethodPost, "/documents", nil, cfg, &data); err != nil {
		return nil, err
	}
	d := data.Document.toModel()
	return &d, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id string, upd models.DocumentUpdate) (*models.Document, error) {
	var data struct {
		Document wireDocument `json:"document"`
	}
	if err := c.do(ctx, http.MethodPut, "/documents/"+url.PathEscape(id), nil, upd, &data); err != nil {
		return nil, err
	}
	d := data.Document.toModel()
	return &d, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) BulkDeleteDocuments(ctx context.Context, ids []string) (int, error) {
	body := map[string][]string{"ids": ids}
	var data struct {
		DeletedCount int `json:"deletedCount"`
	}
	if err := c.do(ctx, http.MethodDelete, "/documents/bulk", nil, body, &data); err != nil {
		return 0, err
	}
	return data.DeletedCount, nil
}

func (c *HTTPClient) DocumentStats(ctx context.Context) (*models.DocumentStats, error) {
	var stats models.DocumentStats
	if err := c.do(ctx, http.MethodGet, "/documents/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ---- audits ----

func (c *HTTPClient) ListAudits(ctx context.Context, q AuditQuery) ([]models.Audit, models.Pagination, error) {
	var data listPayload[wireAudit]
	if err := c.do(ctx, http.MethodGet, "/audits", q.values(), nil, &data); err != nil {
		return nil, models.Pagination{}, err
	}
	audits := make([]models.Audit, 0, len(data.Data))
	for _, w := range data.Data {
		audits = append(audits, w.toModel())
	}
	return audits, data.Pagination.toModel(), nil
}

func (c *HTTPClient) GetAudit(ctx context.Context, id string) (*models.Audit, error) {
	var data struct {
		Audit wireAudit `json:"audit"`
	}
	if err := c.do(ctx, http.MethodGet, "/audits/"+url.PathEscape(id), nil, nil, &data); err != nil {
		return nil, err
	}
	a := data.Audit.toModel()
	return &a, nil
}

// CreateAudit dispatches on the source variant: WEB sources go as JSON to
// audits/web, DOCUMENT sources as multipart form data to audits/document
// with the file under the "document" field.
func (c *HTTPClient) CreateAudit(ctx context.Context, cfg models.AuditCreation) (*models.Audit, error) {
	var data struct {
		Audit wireAudit `json:"audit"`
	}

	switch src := cfg.Source.(type) {
	case models.WebSource:
		body := map[string]any{
			"sourceType":   models.SourceTypeWeb,
			"documentType": cfg.DocumentType,
			"sourceUrl":    src.URL,
		}
		addField(body, "name", cfg.Name)
		addField(body, "companyName", cfg.CompanyName)
		addField(body, "domain", cfg.Domain)
		addField(body, "jurisdiction", cfg.Jurisdiction)
		if len(cfg.CustomFields) > 0 {
			body["customFields"] = cfg.CustomFields
		}
		if err := c.do(ctx, http.MethodPost, "/audits/web", nil, body, &data); err != nil {
			return nil, err
		}

	case models.DocumentSource:
		fields := map[string]string{
			"sourceType":   string(models.SourceTypeDocument),
			"documentType": string(cfg.DocumentType),
		}
		if cfg.Name != "" {
			fields["name"] = cfg.Name
		}
		if cfg.CompanyName != "" {
			fields["companyName"] = cfg.CompanyName
		}
		if cfg.Domain != "" {
			fields["domain"] = cfg.Domain
		}
		if cfg.Jurisdiction != "" {
			fields["jurisdiction"] = cfg.Jurisdiction
		}
		if len(cfg.CustomFields) > 0 {
			encoded, err := json.Marshal(cfg.CustomFields)
			if err != nil {
				return nil, fmt.Errorf("failed to encode custom fields: %w", err)
			}
			fields["customFields"] = string(encoded)
		}
		if err := c.doMultipart(ctx, "/audits/document", fields, src.FileName, src.Content, &data); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported audit source %T", cfg.Source)
	}

	a := data.Audit.toModel()
	return &a, nil
}

func (c *HTTPClient) UpdateAudit(ctx context.Context, id string, upd models.AuditUpdate) (*models.Audit, error) {
	var data struct {
		Audit wireAudit `json:"audit"`
	}
	if err := c.do(ctx, http.MethodPut, "/audits/"+url.PathEscape(id), nil, upd, &data); err != nil {
		return nil, err
	}
	a := data.Audit.toModel()
	return &a, nil
}

func (c *HTTPClient) DeleteAudit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/audits/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) BulkDeleteAudits(ctx context.Context, ids []string) (int, error) {
	body := map[string][]string{"ids": ids}
	var data struct {
		DeletedCount int `json:"deletedCount"`
	}
	if err := c.do(ctx, http.MethodDelete, "/audits/bulk", nil, body, &data); err != nil {
		return 0, err
	}
	return data.DeletedCount, nil
}

func (c *HTTPClient) NewAuditVersion(ctx context.Context, id, feedback, newContext string) (*models.Audit, error) {
	body := map[string]string{"feedback": feedback}
	if newContext != "" {
		body["newContext"] = newContext
	}
	var data struct {
		Audit wireAudit `json:"audit"`
	}
	if err := c.do(ctx, http.MethodPost, "/audits/"+url.PathEscape(id)+"/version", nil, body, &data); err != nil {
		return nil, err
	}
	a := data.Audit.toModel()
	return &a, nil
}

func (c *HTTPClient) AuditStats(ctx context.Context) (*models.AuditStats, error) {
	var stats models.AuditStats
	if err := c.do(ctx, http.MethodGet, "/audits/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ---- plumbing ----

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *HTTPClient) doMultipart(ctx context.Context, path string, fields map[string]string, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile(auditFileField, fileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	ctx := req.Context()
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.tokens(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "unauthorized response, clearing session",
			"method", req.Method, "path", req.URL.Path)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return NewRemoteError(resp.StatusCode, "")
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return NewRemoteError(resp.StatusCode, "")
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return NewRemoteError(resp.StatusCode, msg)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response payload: %w", err)
		}
	}
	return nil
}

func addField(body map[string]any, key, value string) {
	if value != "" {
		body[key] = value
	}
}
