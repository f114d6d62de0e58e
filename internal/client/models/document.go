package models

import "time"

// DocumentType enumerates the kinds of legal documents the service generates.
type DocumentType string

const (
	DocumentTypeTOS           DocumentType = "TOS"
	DocumentTypePrivacyPolicy DocumentType = "PRIVACY_POLICY"
	DocumentTypeCGU           DocumentType = "CGU"
)

// DocumentStatus enumerates the lifecycle states of a document.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusGenerated DocumentStatus = "GENERATED"
	DocumentStatusPublished DocumentStatus = "PUBLISHED"
	DocumentStatusArchived  DocumentStatus = "ARCHIVED"
)

// DocumentMetadata carries optional generation context attached to a document.
type DocumentMetadata struct {
	CompanyName  string         `json:"companyName,omitempty"`
	Domain       string         `json:"domain,omitempty"`
	Jurisdiction string         `json:"jurisdiction,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// Document is a generated legal document cached client-side.
// Version starts at 1 and increments by exactly one on every successful
// server update.
type Document struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      DocumentType      `json:"type"`
	Content   string            `json:"content"`
	Status    DocumentStatus    `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Version   int               `json:"version"`
	Metadata  *DocumentMetadata `json:"metadata,omitempty"`
}

// GenerationConfig is the payload for creating a new document.
type GenerationConfig struct {
	Type         DocumentType   `json:"type"`
	CompanyName  string         `json:"companyName"`
	Domain       string         `json:"domain"`
	Jurisdiction string         `json:"jurisdiction"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// DocumentUpdate is a partial update; nil fields are left untouched.
type DocumentUpdate struct {
	Name     *string           `json:"name,omitempty"`
	Content  *string           `json:"content,omitempty"`
	Status   *DocumentStatus   `json:"status,omitempty"`
	Metadata *DocumentMetadata `json:"metadata,omitempty"`
}

// DocumentFilters holds the active filter criteria for the documents view.
// Zero-valued fields are inactive; all active criteria must match.
type DocumentFilters struct {
	Search   string
	Type     DocumentType
	Status   DocumentStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// DocumentStats aggregates the raw (unfiltered) document collection.
type DocumentStats struct {
	Total    int                    `json:"total"`
	ByType   map[DocumentType]int   `json:"byType"`
	ByStatus map[DocumentStatus]int `json:"byStatus"`
}
