package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aGautrain/legeclair/internal/client/api"
	"github.com/aGautrain/legeclair/internal/client/models"
	"github.com/aGautrain/legeclair/internal/common"
	"github.com/aGautrain/legeclair/internal/logging"
)

type fakeAuditsAPI struct {
	listFn        func(ctx context.Context, q api.AuditQuery) ([]models.Audit, models.Pagination, error)
	getFn         func(ctx context.Context, id string) (*models.Audit, error)
	createFn      func(ctx context.Context, cfg models.AuditCreation) (*models.Audit, error)
	updateFn      func(ctx context.Context, id string, upd models.AuditUpdate) (*models.Audit, error)
	deleteFn      func(ctx context.Context, id string) error
	bulkDeleteFn  func(ctx context.Context, ids []string) (int, error)
	newVersionFn  func(ctx context.Context, id, feedback, newContext string) (*models.Audit, error)
	statsFn       func(ctx context.Context) (*models.AuditStats, error)
	versionCalls  int
	lastCreateCfg models.AuditCreation
}

func (f *fakeAuditsAPI) ListAudits(ctx context.Context, q api.AuditQuery) ([]models.Audit, models.Pagination, error) {
	return f.listFn(ctx, q)
}

func (f *fakeAuditsAPI) GetAudit(ctx context.Context, id string) (*models.Audit, error) {
	return f.getFn(ctx, id)
}

func (f *fakeAuditsAPI) CreateAudit(ctx context.Context, cfg models.AuditCreation) (*models.Audit, error) {
	f.lastCreateCfg = cfg
	return f.createFn(ctx, cfg)
}

func (f *fakeAuditsAPI) UpdateAudit(ctx context.Context, id string, upd models.AuditUpdate) (*models.Audit, error) {
	return f.updateFn(ctx, id, upd)
}

func (f *fakeAuditsAPI) DeleteAudit(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeAuditsAPI) BulkDeleteAudits(ctx context.Context, ids []string) (int, error) {
	return f.bulkDeleteFn(ctx, ids)
}

func (f *fakeAuditsAPI) NewAuditVersion(ctx context.Context, id, feedback, newContext string) (*models.Audit, error) {
	f.versionCalls++
	return f.newVersionFn(ctx, id, feedback, newContext)
}

func (f *fakeAuditsAPI) AuditStats(ctx context.Context) (*models.AuditStats, error) {
	return f.statsFn(ctx)
}

func makeAudit(id string, opts ...func(*models.Audit)) models.Audit {
	a := models.Audit{
		ID:           id,
		Name:         "Audit " + id,
		SourceType:   models.SourceTypeWeb,
		DocumentType: models.DocumentTypeTOS,
		Status:       models.AuditStatusCompleted,
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Version:      1,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func fetchedAuditStore(t *testing.T, audits []models.Audit) (*AuditStore, *fakeAuditsAPI) {
	t.Helper()
	client := &fakeAuditsAPI{
		listFn: func(ctx context.Context, q api.AuditQuery) ([]models.Audit, models.Pagination, error) {
			return audits, models.Pagination{TotalItems: len(audits)}, nil
		},
	}
	s := NewAuditStore(client, logging.NewDiscardLogger())
	require.NoError(t, s.Fetch(context.Background()))
	return s, client
}

func TestAuditStore_BulkDeleteClearsSelection(t *testing.T) {
	s, client := fetchedAuditStore(t, []models.Audit{makeAudit("a"), makeAudit("b"), makeAudit("c")})
	client.bulkDeleteFn = func(ctx context.Context, ids []string) (int, error) {
		return len(ids), nil
	}
	s.ToggleSelect("a")
	s.ToggleSelect("c")

	n, err := s.BulkDelete(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	raw := s.Raw()
	require.Len(t, raw, 1)
	assert.Equal(t, "c", raw[0].ID)
	assert.Equal(t, 1, s.Pagination().TotalItems)
	assert.Empty(t, s.SelectedIDs())
}

func TestAuditStore_BulkDeleteFailureLeavesState(t *testing.T) {
	s, client := fetchedAuditStore(t, []models.Audit{makeAudit("a"), makeAudit("b")})
	client.bulkDeleteFn = func(ctx context.Context, ids []string) (int, error) {
		return 0, fmt.Errorf("bulk delete: %w", common.ErrUnavailable)
	}
	s.ToggleSelect("a")

	_, err := s.BulkDelete(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Len(t, s.Raw(), 2)
	assert.True(t, s.Selected("a"))
}

func TestAuditStore_SeverityMatchesAnyCorrection(t *testing.T) {
	withCorrections := func(sevs ...models.Severity) func(*models.Audit) {
		return func(a *models.Audit) {
			for i, sev := range sevs {
				a.Corrections = append(a.Corrections, models.Correction{
					ID:       fmt.Sprintf("%s-c%d", a.ID, i),
					Severity: sev,
					Category: models.CategoryLegal,
				})
			}
		}
	}
	audits := []models.Audit{
		makeAudit("a", withCorrections(models.SeverityLow, models.SeverityCritical)),
		makeAudit("b", withCorrections(models.SeverityMedium)),
		makeAudit("c"),
	}
	s, _ := fetchedAuditStore(t, audits)

	s.SetFilters(models.AuditFilters{Severity: models.SeverityCritical})
	got := s.Filtered()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	s.SetFilters(models.AuditFilters{Category: models.CategoryLegal})
	assert.Len(t, s.Filtered(), 2)

	s.SetFilters(models.AuditFilters{Category: models.CategoryGrammar})
	assert.Empty(t, s.Filtered())
}

func TestAuditStore_SearchCoversBothContents(t *testing.T) {
	audits := []models.Audit{
		makeAudit("a", func(a *models.Audit) { a.SourceContent = "the liability clause" }),
		makeAudit("b", func(a *models.Audit) { a.CorrectedContent = "limited LIABILITY" }),
		makeAudit("c", func(a *models.Audit) { a.Name = "Liability review" }),
		makeAudit("d"),
	}
	s, _ := fetchedAuditStore(t, audits)
	s.SetFilters(models.AuditFilters{Search: "liability"})
	assert.Len(t, s.Filtered(), 3)
}

func TestAuditStore_CreateCarriesSourceVariant(t *testing.T) {
	s, client := fetchedAuditStore(t, nil)
	client.createFn = func(ctx context.Context, cfg models.AuditCreation) (*models.Audit, error) {
		return &models.Audit{ID: "new", Name: cfg.Name, SourceType: cfg.Source.SourceType(), Version: 1}, nil
	}

	a, err := s.Create(context.Background(), models.AuditCreation{
		Name:         "Site check",
		DocumentType: models.DocumentTypeCGU,
		Source:       models.WebSource{URL: "https://example.org/terms"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeWeb, a.SourceType)
	assert.Equal(t, models.SourceTypeWeb, client.lastCreateCfg.Source.SourceType())
	assert.Equal(t, "new", s.Raw()[0].ID)
	assert.Equal(t, 1, s.Pagination().TotalItems)
}

func TestAuditStore_UpdateUnknownIDFailsLocally(t *testing.T) {
	s, _ := fetchedAuditStore(t, []models.Audit{makeAudit("a")})
	status := models.AuditStatusReviewed

	_, err := s.Update(context.Background(), "ghost", models.AuditUpdate{Status: &status})
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "audit not found", s.Error())
}

func TestAuditStore_NewVersionPrependsResult(t *testing.T) {
	s, client := fetchedAuditStore(t, []models.Audit{makeAudit("a"), makeAudit("b")})
	client.newVersionFn = func(ctx context.Context, id, feedback, newContext string) (*models.Audit, error) {
		next := makeAudit(id + "-v2")
		next.Version = 2
		next.Context = newContext
		return &next, nil
	}

	a, err := s.NewVersion(context.Background(), "b", "tone it down", "B2B only")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Version)
	assert.Equal(t, 1, client.versionCalls)

	// the predecessor stays in the collection, the new version leads it
	raw := s.Raw()
	require.Len(t, raw, 3)
	assert.Equal(t, "b-v2", raw[0].ID)
	assert.Equal(t, "b", raw[2].ID)
	assert.Equal(t, 3, s.Pagination().TotalItems)
}

func TestAuditStore_NewVersionUnknownIDFailsLocally(t *testing.T) {
	s, client := fetchedAuditStore(t, []models.Audit{makeAudit("a")})

	_, err := s.NewVersion(context.Background(), "ghost", "", "")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, client.versionCalls)
}

func TestAuditStore_SortByCorrectionCount(t *testing.T) {
	withN := func(n int) func(*models.Audit) {
		return func(a *models.Audit) {
			a.Corrections = make([]models.Correction, n)
		}
	}
	audits := []models.Audit{
		makeAudit("a", withN(1)),
		makeAudit("b", withN(5)),
		makeAudit("c", withN(3)),
	}
	s, _ := fetchedAuditStore(t, audits)
	s.SetSort(models.TableSort{Key: "corrections", Order: models.SortDesc})

	got := s.Filtered()
	assert.Equal(t, []string{"b", "c", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestAuditStore_StatsCountsCorrectionsPerSeverity(t *testing.T) {
	audits := []models.Audit{
		makeAudit("a", func(a *models.Audit) {
			a.Corrections = []models.Correction{
				{Severity: models.SeverityHigh},
				{Severity: models.SeverityHigh},
				{Severity: models.SeverityLow},
			}
		}),
		makeAudit("b", func(a *models.Audit) {
			a.SourceType = models.SourceTypeDocument
			a.Status = models.AuditStatusPending
			a.Corrections = []models.Correction{{Severity: models.SeverityHigh}}
		}),
	}
	s, _ := fetchedAuditStore(t, audits)

	st := s.Stats()
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 3, st.BySeverity[models.SeverityHigh])
	assert.Equal(t, 1, st.BySeverity[models.SeverityLow])
	assert.Equal(t, 1, st.BySourceType[models.SourceTypeDocument])
	assert.Equal(t, 1, st.ByStatus[models.AuditStatusPending])
}
