package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aGautrain/legeclair/internal/client/models"
)

func TestParseDocumentFilters(t *testing.T) {
	f, err := parseDocumentFilters([]string{"search=privacy", "type=tos", "status=draft", "from=2024-03-01"})
	require.NoError(t, err)

	assert.Equal(t, "privacy", f.Search)
	assert.Equal(t, models.DocumentTypeTOS, f.Type)
	assert.Equal(t, models.DocumentStatusDraft, f.Status)
	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Nil(t, f.DateTo)
}

func TestParseDocumentFilters_ClearResetsEverything(t *testing.T) {
	f, err := parseDocumentFilters([]string{"clear"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentFilters{}, f)
}

func TestParseDocumentFilters_Rejections(t *testing.T) {
	_, err := parseDocumentFilters([]string{"notapair"})
	require.Error(t, err)

	_, err = parseDocumentFilters([]string{"color=blue"})
	require.Error(t, err)

	_, err = parseDocumentFilters([]string{"from=yesterday"})
	require.Error(t, err)
}

func TestParseAuditFilters(t *testing.T) {
	f, err := parseAuditFilters([]string{"source=web", "severity=critical", "category=legal", "to=2024-06-30"})
	require.NoError(t, err)

	assert.Equal(t, models.SourceTypeWeb, f.SourceType)
	assert.Equal(t, models.SeverityCritical, f.Severity)
	assert.Equal(t, models.CategoryLegal, f.Category)
	require.NotNil(t, f.DateTo)
	assert.Nil(t, f.DateFrom)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, models.TableSort{Key: "name", Order: models.SortAsc}, parseSort([]string{"name"}))
	assert.Equal(t, models.TableSort{Key: "createdAt", Order: models.SortDesc}, parseSort([]string{"createdAt", "desc"}))
}

func TestParsePositiveInt(t *testing.T) {
	n, ok := parsePositiveInt([]string{"3"})
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = parsePositiveInt([]string{"0"})
	assert.False(t, ok)
	_, ok = parsePositiveInt([]string{"abc"})
	assert.False(t, ok)
	_, ok = parsePositiveInt(nil)
	assert.False(t, ok)
}
