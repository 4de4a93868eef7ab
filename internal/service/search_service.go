package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/store"
)

// SearchService defines the interface for global search across tasks and
// documents. All filters are AND-combined and an empty filter matches
// everything.
type SearchService interface {
	Search(ctx context.Context, filters *dto.SearchFilters) (*dto.SearchResults, error)
}

// searchServiceImpl is the implementation of SearchService
type searchServiceImpl struct {
	store   *store.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSearchService creates a new instance of SearchService
func NewSearchService(st *store.Store, m *metrics.Metrics, logger *zap.Logger) SearchService {
	return &searchServiceImpl{store: st, metrics: m, logger: logger}
}

// Search filters a snapshot of the app document. The keyword matches task
// title or description and document name or content; the date range covers a
// task's creation time and a document's last-modified time; location matches
// as a substring. All matching is case-insensitive.
func (s *searchServiceImpl) Search(ctx context.Context, filters *dto.SearchFilters) (*dto.SearchResults, error) {
	state := s.store.State()
	keyword := strings.ToLower(filters.Keyword)
	location := strings.ToLower(filters.Location)

	results := &dto.SearchResults{Tasks: []domain.Task{}, Documents: []domain.Document{}}
	for _, task := range state.Tasks {
		if !matchKeyword(keyword, task.Title, task.Description) {
			continue
		}
		if !matchDateRange(task.CreatedAt, filters.StartDate, filters.EndDate) {
			continue
		}
		if !matchLocation(location, task.Location) {
			continue
		}
		results.Tasks = append(results.Tasks, task)
	}
	sort.Slice(results.Tasks, func(i, j int) bool { return results.Tasks[i].ID < results.Tasks[j].ID })

	for _, doc := range state.Documents {
		if !matchKeyword(keyword, doc.Name, doc.Content) {
			continue
		}
		if !matchDateRange(doc.LastModified, filters.StartDate, filters.EndDate) {
			continue
		}
		if !matchLocation(location, doc.Location) {
			continue
		}
		results.Documents = append(results.Documents, doc)
	}

	s.metrics.IncrementSearch()
	return results, nil
}

func matchKeyword(keyword string, fields ...string) bool {
	if keyword == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), keyword) {
			return true
		}
	}
	return false
}

func matchDateRange(at time.Time, start, end *time.Time) bool {
	if start != nil && at.Before(*start) {
		return false
	}
	if end != nil && at.After(*end) {
		return false
	}
	return true
}

func matchLocation(location, field string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), location)
}
