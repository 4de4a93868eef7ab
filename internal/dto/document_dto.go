package dto

import "taskpro-api/internal/domain"

// SaveDocumentRequest creates a document or replaces its metadata. An empty
// ID creates a new document.
type SaveDocumentRequest struct {
	ID         string              `json:"id"`
	Name       string              `json:"name" binding:"required"`
	Type       domain.DocumentType `json:"type"`
	Content    string              `json:"content"`
	SharedWith []string            `json:"sharedWith"`
	Location   string              `json:"location"`
}

// SaveContentRequest is the auto-save payload for the document editor.
type SaveContentRequest struct {
	Content string `json:"content"`
}
