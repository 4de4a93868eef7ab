package dto

import (
	"time"

	"taskpro-api/internal/domain"
)

// SearchFilters are AND-combined; an empty field always matches.
type SearchFilters struct {
	Keyword   string     `json:"keyword"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Location  string     `json:"location"`
}

// SearchResults are the matching tasks and documents in input order.
type SearchResults struct {
	Tasks     []domain.Task     `json:"tasks"`
	Documents []domain.Document `json:"documents"`
}
