package api

import (
	"encoding/json"
	"time"

	"github.com/aGautrain/legeclair/internal/client/models"
)

// Wire DTOs mirror the backend's JSON shapes; the backend keys entities by
// "_id". Normalization into models happens here so the rest of the client
// never sees wire naming.

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type wirePagination struct {
	Page         int `json:"page"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

func (w wirePagination) toModel() models.Pagination {
	return models.Pagination(w)
}

type listPayload[T any] struct {
	Data       []T            `json:"data"`
	Pagination wirePagination `json:"pagination"`
}

type wireUser struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Avatar      string    `json:"avatar"`
	Role        string    `json:"role"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

func (w wireUser) toModel() models.User {
	return models.User{
		ID:          w.ID,
		Username:    w.Username,
		Email:       w.Email,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Avatar:      w.Avatar,
		Role:        models.Role(w.Role),
		Credits:     w.Credits,
		CreatedAt:   w.CreatedAt,
		LastLoginAt: w.LastLoginAt,
	}
}

type wireDocument struct {
	ID        string                   `json:"_id"`
	Name      string                   `json:"name"`
	Type      string                   `json:"type"`
	Content   string                   `json:"content"`
	Status    string                   `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Version   int                      `json:"version"`
	Metadata  *models.DocumentMetadata `json:"metadata"`
}

func (w wireDocument) toModel() models.Document {
	return models.Document{
		ID:        w.ID,
		Name:      w.Name,
		Type:      models.DocumentType(w.Type),
		Content:   w.Content,
		Status:    models.DocumentStatus(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Version:   w.Version,
		Metadata:  w.Metadata,
	}
}

type wireCorrection struct {
	ID            string    `json:"_id"`
	OriginalText  string    `json:"originalText"`
	CorrectedText string    `json:"correctedText"`
	Explanation   string    `json:"explanation"`
	Severity      string    `json:"severity"`
	Category      string    `json:"category"`
	StartPosition int       `json:"startPosition"`
	EndPosition   int       `json:"endPosition"`
	Page          int       `json:"page"`
	LineStart     int       `json:"lineStart"`
	LineEnd       int       `json:"lineEnd"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (w wireCorrection) toModel() models.Correction {
	return models.Correction{
		ID:            w.ID,
		OriginalText:  w.OriginalText,
		CorrectedText: w.CorrectedText,
		Explanation:   w.Explanation,
		Severity:      models.Severity(w.Severity),
		Category:      models.Category(w.Category),
		StartPosition: w.StartPosition,
		EndPosition:   w.EndPosition,
		Page:          w.Page,
		LineStart:     w.LineStart,
		LineEnd:       w.LineEnd,
		CreatedAt:     w.CreatedAt,
	}
}

type wireAudit struct {
	ID               string                `json:"_id"`
	Name             string                `json:"name"`
	SourceType       string                `json:"sourceType"`
	DocumentType     string                `json:"documentType"`
	SourceContent    string                `json:"sourceContent"`
	CorrectedContent string                `json:"correctedContent"`
	Status           string                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	Version          int                   `json:"version"`
	Metadata         *models.AuditMetadata `json:"metadata"`
	Corrections      []wireCorrection      `json:"corrections"`
	Context          string                `json:"context"`
	Notes            string                `json:"notes"`
}

func (w wireAudit) toModel() models.Audit {
	corrections := make([]models.Correction, 0, len(w.Corrections))
	for _, c := range w.Corrections {
		corrections = append(corrections, c.toModel())
	}
	return models.Audit{
		ID:               w.ID,
		Name:             w.Name,
		SourceType:       models.SourceType(w.SourceType),
		DocumentType:     models.DocumentType(w.DocumentType),
		SourceContent:    w.SourceContent,
		CorrectedContent: w.CorrectedContent,
		Status:           models.AuditStatus(w.Status),
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
		Version:          w.Version,
		Metadata:         w.Metadata,
		Corrections:      corrections,
		Context:          w.Context,
		Notes:            w.Notes,
	}
}
