package dto

// SaveAutomationRequest creates or updates a rule. An empty ID creates a new
// rule; Enabled defaults to true on creation.
type SaveAutomationRequest struct {
	ID      string `json:"id"`
	Trigger string `json:"trigger" binding:"required"`
	Action  string `json:"action" binding:"required"`
	Enabled *bool  `json:"enabled"`
}

// AutomationCatalogResponse lists the fixed trigger and action phrases.
type AutomationCatalogResponse struct {
	Triggers []string `json:"triggers"`
	Actions  []string `json:"actions"`
}
