package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aGautrain/legeclair/internal/client/models"
	"github.com/aGautrain/legeclair/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api", opts...)
}

func TestSend_InjectsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		io.WriteString(w, `{"success":true}`)
	}, WithTokenFunc(func(context.Context) string { return "tok-1" }))

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestSend_NoTokenMeansNoAuthHeader(t *testing.T) {
	var gotAuth string
	headerSet := true
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, headerSet = r.Header["Authorization"]
		io.WriteString(w, `{"success":true}`)
	})

	require.NoError(t, c.Ping(context.Background()))
	assert.Empty(t, gotAuth)
	assert.False(t, headerSet)
}

func TestSend_UnauthorizedTriggersHook(t *testing.T) {
	hookCalls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithUnauthorizedHook(func(context.Context) { hookCalls++ }))

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, hookCalls)

	re, ok := AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, re.Status)
}

func TestSend_EnvelopeFailureCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"success":false,"error":"insufficient credits"}`)
	})

	err := c.Ping(context.Background())
	re, ok := AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, "insufficient credits", re.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, re.Status)
}

func TestSend_FailureFallsBackToMessageField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"message":"no such document"}`)
	})

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
	re, _ := AsRemote(err)
	assert.Equal(t, "no such document", re.Message)
}

func TestSend_TransportErrorWrapsUnavailable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1/api",
		WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestLogin_DecodesUserAndToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"ada@example.org","password":"pw"}`, string(body))
		io.WriteString(w, `{"success":true,"data":{
			"user":{"_id":"u1","username":"ada","email":"ada@example.org","role":"user","credits":7},
			"token":"tok-1"}}`)
	})

	res, err := c.Login(context.Background(), "ada@example.org", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.Equal(t, 7, res.User.Credits)
	assert.Equal(t, "tok-1", res.Token)
}

func TestListDocuments_EncodesViewStateAsQuery(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var q map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		io.WriteString(w, `{"success":true,"data":{
			"data":[{"_id":"d1","name":"TOS v1","type":"TOS","status":"DRAFT","version":1}],
			"pagination":{"page":2,"itemsPerPage":5,"totalItems":11}}}`)
	})

	docs, pg, err := c.ListDocuments(context.Background(), DocumentQuery{
		Filters: models.DocumentFilters{
			Search:   "tos",
			Type:     models.DocumentTypeTOS,
			DateFrom: &from,
		},
		Sort:         models.TableSort{Key: "name", Order: models.SortAsc},
		Page:         2,
		ItemsPerPage: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "2", q["page"][0])
	assert.Equal(t, "5", q["itemsPerPage"][0])
	assert.Equal(t, "tos", q["search"][0])
	assert.Equal(t, "TOS", q["type"][0])
	assert.Equal(t, "2024-03-01T00:00:00Z", q["dateFrom"][0])
	assert.Equal(t, "name", q["sortKey"][0])
	assert.Equal(t, "asc", q["sortOrder"][0])
	assert.NotContains(t, q, "status")
	assert.NotContains(t, q, "dateTo")

	require.Len(t, docs, 1)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, models.Pagination{Page: 2, ItemsPerPage: 5, TotalItems: 11}, pg)
}

func TestCreateAudit_WebSourceGoesAsJSON(t *testing.T) {
	var path, contentType, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		io.WriteString(w, `{"success":true,"data":{"audit":{"_id":"a1","sourceType":"WEB","version":1}}}`)
	})

	a, err := c.CreateAudit(context.Background(), models.AuditCreation{
		Name:         "Site check",
		DocumentType: models.DocumentTypeCGU,
		Source:       models.WebSource{URL: "https://example.org/terms"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/audits/web", path)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{
		"sourceType":"WEB","documentType":"CGU",
		"sourceUrl":"https://example.org/terms","name":"Site check"
	}`, body)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, models.SourceTypeWeb, a.SourceType)
}

func TestCreateAudit_DocumentSourceGoesAsMultipart(t *testing.T) {
	var path, fileName, fileBody, sourceType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		sourceType = r.FormValue("sourceType")
		f, hdr, err := r.FormFile("document")
		require.NoError(t, err)
		defer f.Close()
		fileName = hdr.Filename
		b, _ := io.ReadAll(f)
		fileBody = string(b)
		io.WriteString(w, `{"success":true,"data":{"audit":{"_id":"a2","sourceType":"DOCUMENT","version":1}}}`)
	})

	a, err := c.CreateAudit(context.Background(), models.AuditCreation{
		DocumentType: models.DocumentTypeTOS,
		Source: models.DocumentSource{
			FileName: "cgu.pdf",
			Content:  strings.NewReader("%PDF-1.4 fake"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/audits/document", path)
	assert.Equal(t, "DOCUMENT", sourceType)
	assert.Equal(t, "cgu.pdf", fileName)
	assert.Equal(t, "%PDF-1.4 fake", fileBody)
	assert.Equal(t, "a2", a.ID)
}

func TestCreateAudit_UnknownSourceIsRejected(t *testing.T) {
	c := NewHTTPClient("http://unused/api")
	_, err := c.CreateAudit(context.Background(), models.AuditCreation{})
	require.Error(t, err)
}

func TestBulkDeleteAudits_ReturnsDeletedCount(t *testing.T) {
	var body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/audits/bulk", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		io.WriteString(w, `{"success":true,"data":{"deletedCount":2},"message":"2 audits deleted"}`)
	})

	n, err := c.BulkDeleteAudits(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.JSONEq(t, `{"ids":["a","b"]}`, body)
}

func TestNewAuditVersion_PostsFeedback(t *testing.T) {
	var path, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		io.WriteString(w, `{"success":true,"data":{"audit":{"_id":"a1","version":2}}}`)
	})

	a, err := c.NewAuditVersion(context.Background(), "a1", "softer tone", "B2B only")
	require.NoError(t, err)
	assert.Equal(t, "/api/audits/a1/version", path)
	assert.JSONEq(t, `{"feedback":"softer tone","newContext":"B2B only"}`, body)
	assert.Equal(t, 2, a.Version)
}

func TestGetAudit_NormalizesWireIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"audit":{
			"_id":"a1","name":"Check","sourceType":"WEB","status":"COMPLETED","version":1,
			"corrections":[{"_id":"c1","severity":"HIGH","category":"LEGAL","startPosition":3,"endPosition":9}]}}}`)
	})

	a, err := c.GetAudit(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	require.Len(t, a.Corrections, 1)
	assert.Equal(t, "c1", a.Corrections[0].ID)
	assert.Equal(t, models.SeverityHigh, a.Corrections[0].Severity)
}
