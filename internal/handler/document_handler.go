package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/service"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// ListDocuments returns all stored documents.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	documents, err := h.documentService.ListDocuments(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, documents)
}

// GetDocument returns one document by id.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	document, err := h.documentService.GetDocument(c.Request.Context(), c.Param("documentId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, document)
}

// SaveDocument creates a document or replaces an existing one.
func (h *DocumentHandler) SaveDocument(c *gin.Context) {
	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	document, err := h.documentService.SaveDocument(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	response.SendSuccess(c, status, document)
}

// SaveContent replaces a document's body, the editor auto-save path.
func (h *DocumentHandler) SaveContent(c *gin.Context) {
	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	document, err := h.documentService.SaveContent(c.Request.Context(), c.Param("documentId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, document)
}

// DeleteDocument removes a document.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("documentId")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
