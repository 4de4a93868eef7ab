package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
)

// settingsKeys are the client preference keys stored outside the app
// document.
var settingsKeys = map[string]bool{
	store.KeyTheme:         true,
	store.KeyAppTheme:      true,
	store.KeyVisibleViews:  true,
	store.KeySavedSearches: true,
}

// SettingsHandler stores small client preferences (theme, visible views,
// saved searches) as opaque JSON values under fixed keys.
type SettingsHandler struct {
	gateway *store.Gateway
}

func NewSettingsHandler(gateway *store.Gateway) *SettingsHandler {
	return &SettingsHandler{gateway: gateway}
}

// GetSetting returns a preference value, or null when it was never set.
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if !settingsKeys[key] {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Unknown settings key")
		return
	}

	var value json.RawMessage
	found, err := h.gateway.GetSetting(c.Request.Context(), key, &value)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !found {
		response.SendSuccess(c, http.StatusOK, nil)
		return
	}
	response.SendSuccess(c, http.StatusOK, value)
}

// PutSetting stores a preference value verbatim.
func (h *SettingsHandler) PutSetting(c *gin.Context) {
	key := c.Param("key")
	if !settingsKeys[key] {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Unknown settings key")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.gateway.PutSetting(c.Request.Context(), key, json.RawMessage(body)); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, json.RawMessage(body))
}

// DeleteSetting removes a preference value.
func (h *SettingsHandler) DeleteSetting(c *gin.Context) {
	key := c.Param("key")
	if !settingsKeys[key] {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Unknown settings key")
		return
	}

	if err := h.gateway.DeleteSetting(c.Request.Context(), key); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
