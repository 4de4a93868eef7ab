package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/service"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs a global search over tasks and documents.
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchFilters
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	results, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, results)
}
