package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/service"
)

type AutomationHandler struct {
	automationService service.AutomationService
}

func NewAutomationHandler(automationService service.AutomationService) *AutomationHandler {
	return &AutomationHandler{automationService: automationService}
}

// ListRules returns all stored automation rules.
func (h *AutomationHandler) ListRules(c *gin.Context) {
	rules, err := h.automationService.ListRules(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, rules)
}

// Catalog returns the fixed trigger and action phrase lists.
func (h *AutomationHandler) Catalog(c *gin.Context) {
	catalog, err := h.automationService.Catalog(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, catalog)
}

// SaveRule creates or rewrites an automation rule.
func (h *AutomationHandler) SaveRule(c *gin.Context) {
	var req dto.SaveAutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	rule, err := h.automationService.SaveRule(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	response.SendSuccess(c, status, rule)
}

// ToggleRule flips a rule's enabled flag.
func (h *AutomationHandler) ToggleRule(c *gin.Context) {
	rule, err := h.automationService.ToggleRule(c.Request.Context(), c.Param("ruleId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, rule)
}

// DeleteRule removes an automation rule.
func (h *AutomationHandler) DeleteRule(c *gin.Context) {
	if err := h.automationService.DeleteRule(c.Request.Context(), c.Param("ruleId")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
