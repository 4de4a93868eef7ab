package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/response"
)

func TestSaveRule_CreateDefaultsEnabled(t *testing.T) {
	st := newSeedStore()
	svc := NewAutomationService(st, zap.NewNop())

	rule, err := svc.SaveRule(context.Background(), &dto.SaveAutomationRequest{
		Trigger: domain.AutomationTriggers[3],
		Action:  domain.AutomationActions[1],
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
	assert.True(t, rule.Enabled)

	rules, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 4)
}

func TestSaveRule_RejectsPhrasesOutsideCatalog(t *testing.T) {
	st := newSeedStore()
	svc := NewAutomationService(st, zap.NewNop())

	_, err := svc.SaveRule(context.Background(), &dto.SaveAutomationRequest{
		Trigger: "quando chover",
		Action:  domain.AutomationActions[0],
	})
	require.Error(t, err)
	appErr, ok := err.(*response.AppError)
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)

	_, err = svc.SaveRule(context.Background(), &dto.SaveAutomationRequest{
		Trigger: domain.AutomationTriggers[0],
		Action:  "ligar para o cliente",
	})
	require.Error(t, err)
}

func TestToggleRule_FlipsEnabled(t *testing.T) {
	st := newSeedStore()
	svc := NewAutomationService(st, zap.NewNop())

	rule, err := svc.ToggleRule(context.Background(), "auto-3")
	require.NoError(t, err)
	assert.True(t, rule.Enabled)

	rule, err = svc.ToggleRule(context.Background(), "auto-3")
	require.NoError(t, err)
	assert.False(t, rule.Enabled)

	_, err = svc.ToggleRule(context.Background(), "auto-999")
	require.Error(t, err)
}

func TestDeleteRule(t *testing.T) {
	st := newSeedStore()
	svc := NewAutomationService(st, zap.NewNop())

	require.NoError(t, svc.DeleteRule(context.Background(), "auto-1"))

	rules, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	require.Error(t, svc.DeleteRule(context.Background(), "auto-1"))
}

func TestCatalog_ListsFixedPhrases(t *testing.T) {
	st := newSeedStore()
	svc := NewAutomationService(st, zap.NewNop())

	catalog, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog.Triggers, 4)
	assert.Len(t, catalog.Actions, 3)
	assert.Contains(t, catalog.Actions, "mudar a prioridade para 'Urgente'")
}
