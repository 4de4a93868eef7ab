package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
)

// AutomationService defines the interface for the automation rule registry.
// Rules are stored configuration only; nothing evaluates them.
type AutomationService interface {
	ListRules(ctx context.Context) ([]domain.AutomationRule, error)
	Catalog(ctx context.Context) (*dto.AutomationCatalogResponse, error)
	SaveRule(ctx context.Context, req *dto.SaveAutomationRequest) (*domain.AutomationRule, error)
	ToggleRule(ctx context.Context, ruleID string) (*domain.AutomationRule, error)
	DeleteRule(ctx context.Context, ruleID string) error
}

// automationServiceImpl is the implementation of AutomationService
type automationServiceImpl struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAutomationService creates a new instance of AutomationService
func NewAutomationService(st *store.Store, logger *zap.Logger) AutomationService {
	return &automationServiceImpl{store: st, logger: logger}
}

// ListRules returns all rules in stored order.
func (s *automationServiceImpl) ListRules(ctx context.Context) ([]domain.AutomationRule, error) {
	return s.store.State().CloneAutomations(), nil
}

// Catalog returns the fixed trigger and action phrase lists the builder
// offers.
func (s *automationServiceImpl) Catalog(ctx context.Context) (*dto.AutomationCatalogResponse, error) {
	return &dto.AutomationCatalogResponse{
		Triggers: append([]string(nil), domain.AutomationTriggers...),
		Actions:  append([]string(nil), domain.AutomationActions...),
	}, nil
}

// SaveRule creates a rule (empty id, enabled unless stated otherwise) or
// rewrites an existing one. Trigger and action must come from the catalogs.
func (s *automationServiceImpl) SaveRule(ctx context.Context, req *dto.SaveAutomationRequest) (*domain.AutomationRule, error) {
	if !domain.KnownTrigger(req.Trigger) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown trigger", req.Trigger)
	}
	if !domain.KnownAction(req.Action) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown action", req.Action)
	}

	var saved domain.AutomationRule
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		rule := domain.AutomationRule{
			ID:      req.ID,
			Trigger: req.Trigger,
			Action:  req.Action,
			Enabled: true,
		}
		if req.Enabled != nil {
			rule.Enabled = *req.Enabled
		}

		next := state
		next.Automations = state.CloneAutomations()
		if rule.ID == "" {
			rule.ID = "automation-" + uuid.NewString()
			next.Automations = append(next.Automations, rule)
		} else {
			found := false
			for i, existing := range next.Automations {
				if existing.ID == rule.ID {
					next.Automations[i] = rule
					found = true
					break
				}
			}
			if !found {
				return state, response.NewNotFoundError("Automation rule not found")
			}
		}
		saved = rule
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ToggleRule flips a rule's enabled flag.
func (s *automationServiceImpl) ToggleRule(ctx context.Context, ruleID string) (*domain.AutomationRule, error) {
	var toggled domain.AutomationRule
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Automations = state.CloneAutomations()
		for i, rule := range next.Automations {
			if rule.ID != ruleID {
				continue
			}
			rule.Enabled = !rule.Enabled
			next.Automations[i] = rule
			toggled = rule
			return next, nil
		}
		return state, response.NewNotFoundError("Automation rule not found")
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// DeleteRule removes a rule.
func (s *automationServiceImpl) DeleteRule(ctx context.Context, ruleID string) error {
	return s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Automations = make([]domain.AutomationRule, 0, len(state.Automations))
		found := false
		for _, rule := range state.Automations {
			if rule.ID == ruleID {
				found = true
				continue
			}
			next.Automations = append(next.Automations, rule)
		}
		if !found {
			return state, response.NewNotFoundError("Automation rule not found")
		}
		return next, nil
	})
}
