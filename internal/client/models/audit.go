package models

import (
	"io"
	"time"
)

// SourceType tells where an audit's source text came from.
type SourceType string

const (
	SourceTypeWeb      SourceType = "WEB"
	SourceTypeDocument SourceType = "DOCUMENT"
)

// AuditStatus enumerates the lifecycle states of an audit.
type AuditStatus string

const (
	AuditStatusPending    AuditStatus = "PENDING"
	AuditStatusInProgress AuditStatus = "IN_PROGRESS"
	AuditStatusCompleted  AuditStatus = "COMPLETED"
	AuditStatusReviewed   AuditStatus = "REVIEWED"
	AuditStatusArchived   AuditStatus = "ARCHIVED"
)

// Severity ranks how serious a flagged issue is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Category classifies the nature of a flagged issue.
type Category string

const (
	CategoryGrammar    Category = "GRAMMAR"
	CategoryLegal      Category = "LEGAL"
	CategoryCompliance Category = "COMPLIANCE"
	CategoryClarity    Category = "CLARITY"
	CategoryStructure  Category = "STRUCTURE"
	CategoryOther      Category = "OTHER"
)

// Correction is a single flagged issue within an audit's source text.
// Its lifetime is bound to the owning audit.
type Correction struct {
	ID            string    `json:"id"`
	OriginalText  string    `json:"originalText"`
	CorrectedText string    `json:"correctedText"`
	Explanation   string    `json:"explanation"`
	Severity      Severity  `json:"severity"`
	Category      Category  `json:"category"`
	StartPosition int       `json:"startPosition"`
	EndPosition   int       `json:"endPosition"`
	Page          int       `json:"page,omitempty"`
	LineStart     int       `json:"lineStart,omitempty"`
	LineEnd       int       `json:"lineEnd,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuditMetadata carries optional context attached to an audit.
type AuditMetadata struct {
	SourceURL    string         `json:"sourceUrl,omitempty"`
	Reviewer     string         `json:"reviewer,omitempty"`
	CompanyName  string         `json:"companyName,omitempty"`
	Domain       string         `json:"domain,omitempty"`
	Jurisdiction string         `json:"jurisdiction,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// Audit is a legal-compliance audit of a source text, with its ordered
// corrections.
type Audit struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	SourceType       SourceType     `json:"sourceType"`
	DocumentType     DocumentType   `json:"documentType"`
	SourceContent    string         `json:"sourceContent"`
	CorrectedContent string         `json:"correctedContent"`
	Status           AuditStatus    `json:"status"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Version          int            `json:"version"`
	Metadata         *AuditMetadata `json:"metadata,omitempty"`
	Corrections      []Correction   `json:"corrections"`
	Context          string         `json:"context,omitempty"`
	Notes            string         `json:"notes,omitempty"`
}

// AuditSource is the tagged union over audit creation variants. The concrete
// type decides both the endpoint and the request encoding: WebSource goes as
// JSON, DocumentSource as a multipart upload.
type AuditSource interface {
	SourceType() SourceType
}

// WebSource points an audit at a public URL to be scraped server-side.
type WebSource struct {
	URL string
}

func (WebSource) SourceType() SourceType { return SourceTypeWeb }

// DocumentSource attaches a local file whose content is uploaded for parsing.
type DocumentSource struct {
	FileName string
	Content  io.Reader
}

func (DocumentSource) SourceType() SourceType { return SourceTypeDocument }

// AuditCreation is the payload for creating a new audit.
type AuditCreation struct {
	Name         string
	DocumentType DocumentType
	Source       AuditSource
	CompanyName  string
	Domain       string
	Jurisdiction string
	CustomFields map[string]any
}

// AuditUpdate is a partial update; nil fields are left untouched.
type AuditUpdate struct {
	Name             *string        `json:"name,omitempty"`
	CorrectedContent *string        `json:"correctedContent,omitempty"`
	Status           *AuditStatus   `json:"status,omitempty"`
	Metadata         *AuditMetadata `json:"metadata,omitempty"`
	Context          *string        `json:"context,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
}

// AuditFilters holds the active filter criteria for the audits view.
// Zero-valued fields are inactive; all active criteria must match.
// Severity and Category match when any correction on the audit has them.
type AuditFilters struct {
	Search       string
	SourceType   SourceType
	DocumentType DocumentType
	Status       AuditStatus
	Severity     Severity
	Category     Category
	DateFrom     *time.Time
	DateTo       *time.Time
}

// AuditStats aggregates the raw (unfiltered) audit collection. Every
// correction across every audit contributes one count to its severity
// bucket, so the severity total can exceed the audit total.
type AuditStats struct {
	Total        int                 `json:"total"`
	BySourceType map[SourceType]int  `json:"bySourceType"`
	ByStatus     map[AuditStatus]int `json:"byStatus"`
	BySeverity   map[Severity]int    `json:"bySeverity"`
}
