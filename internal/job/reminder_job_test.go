package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/store"
)

type mockNotifier struct {
	mu       sync.Mutex
	enabled  bool
	err      error
	onNotify func()
	sent     []string
	lastBody string
}

func (m *mockNotifier) Enabled() bool {
	return m.enabled
}

func (m *mockNotifier) Notify(ctx context.Context, title, body string) error {
	if m.onNotify != nil {
		m.onNotify()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, title)
	m.lastBody = body
	return nil
}

func newReminderFixture(tasks map[string]domain.Task) *store.Store {
	return store.NewWithState(domain.AppState{
		Tasks:   tasks,
		Users:   map[string]domain.User{},
		Columns: map[string]domain.Column{},
	}, nil, zap.NewNop())
}

func testMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func due(at time.Time) *time.Time {
	return &at
}

func TestReminderJob_SendsWithinWindowAndMarksSent(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	st := newReminderFixture(map[string]domain.Task{
		// Window opened one hour ago, due in one hour
		"task-due": {
			ID:                 "task-due",
			Title:              "Entregar relatório",
			DueDate:            due(now.Add(time.Hour)),
			HasReminder:        true,
			ReminderOffset:     2,
			ReminderOffsetUnit: domain.ReminderUnitHours,
		},
		// Window opens only tomorrow
		"task-early": {
			ID:                 "task-early",
			Title:              "Planejar sprint",
			DueDate:            due(now.AddDate(0, 0, 2)),
			HasReminder:        true,
			ReminderOffset:     1,
			ReminderOffsetUnit: domain.ReminderUnitDays,
		},
		// Due date already passed
		"task-late": {
			ID:                 "task-late",
			Title:              "Tarefa vencida",
			DueDate:            due(now.Add(-time.Minute)),
			HasReminder:        true,
			ReminderOffset:     1,
			ReminderOffsetUnit: domain.ReminderUnitHours,
		},
		// No reminder configured
		"task-plain": {
			ID:      "task-plain",
			Title:   "Sem lembrete",
			DueDate: due(now.Add(30 * time.Minute)),
		},
	})

	notifier := &mockNotifier{enabled: true}
	j := NewReminderJob(st, notifier, testMetrics(), zap.NewNop())
	j.now = func() time.Time { return now }

	j.Run()

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Lembrete de Tarefa - Task Pro", notifier.sent[0])
	assert.Equal(t, "Sua tarefa \"Entregar relatório\" precisa de atenção!", notifier.lastBody)

	state := st.State()
	assert.True(t, state.Tasks["task-due"].ReminderSent)
	assert.False(t, state.Tasks["task-early"].ReminderSent)
	assert.False(t, state.Tasks["task-late"].ReminderSent)

	// A second sweep sends nothing new
	j.Run()
	assert.Len(t, notifier.sent, 1)
}

func TestReminderJob_DisabledNotifierIsNoOp(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	st := newReminderFixture(map[string]domain.Task{
		"task-due": {
			ID:                 "task-due",
			Title:              "Entregar relatório",
			DueDate:            due(now.Add(time.Hour)),
			HasReminder:        true,
			ReminderOffset:     2,
			ReminderOffsetUnit: domain.ReminderUnitHours,
		},
	})

	notifier := &mockNotifier{enabled: false}
	j := NewReminderJob(st, notifier, testMetrics(), zap.NewNop())
	j.now = func() time.Time { return now }

	j.Run()

	assert.Empty(t, notifier.sent)
	// Left unsent so a later sweep can deliver it
	assert.False(t, st.State().Tasks["task-due"].ReminderSent)
}

func TestReminderJob_DeliveryFailureLeavesUnsent(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	st := newReminderFixture(map[string]domain.Task{
		"task-due": {
			ID:                 "task-due",
			Title:              "Entregar relatório",
			DueDate:            due(now.Add(time.Hour)),
			HasReminder:        true,
			ReminderOffset:     2,
			ReminderOffsetUnit: domain.ReminderUnitHours,
		},
	})

	notifier := &mockNotifier{enabled: true, err: errors.New("sink unavailable")}
	j := NewReminderJob(st, notifier, testMetrics(), zap.NewNop())
	j.now = func() time.Time { return now }

	j.Run()
	assert.False(t, st.State().Tasks["task-due"].ReminderSent)

	// Recovery on the next sweep
	notifier.err = nil
	j.Run()
	assert.True(t, st.State().Tasks["task-due"].ReminderSent)
}

func TestReminderJob_RescheduleDuringNotifyStaysRearmed(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	st := newReminderFixture(map[string]domain.Task{
		"task-due": {
			ID:                 "task-due",
			Title:              "Entregar relatório",
			DueDate:            due(now.Add(time.Hour)),
			HasReminder:        true,
			ReminderOffset:     2,
			ReminderOffsetUnit: domain.ReminderUnitHours,
		},
	})

	// The due date moves while the delivery call is in flight
	notifier := &mockNotifier{enabled: true}
	notifier.onNotify = func() {
		_ = st.Commit(context.Background(), func(state domain.AppState) (domain.AppState, error) {
			next := state
			next.Tasks = state.CloneTasks()
			task := next.Tasks["task-due"].Clone()
			rescheduled := now.AddDate(0, 0, 7)
			task.DueDate = &rescheduled
			task.ReminderSent = false
			next.Tasks["task-due"] = task
			return next, nil
		})
	}

	j := NewReminderJob(st, notifier, testMetrics(), zap.NewNop())
	j.now = func() time.Time { return now }

	j.Run()

	require.Len(t, notifier.sent, 1)
	// The rearm for the new due date survives the sweep's mark-sent commit
	assert.False(t, st.State().Tasks["task-due"].ReminderSent)
}

func TestReminderJob_MinuteOffsetArithmetic(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	st := newReminderFixture(map[string]domain.Task{
		// Reminder time is 12:05, not reached yet
		"task-minutes": {
			ID:                 "task-minutes",
			Title:              "Ligar para o cliente",
			DueDate:            due(now.Add(20 * time.Minute)),
			HasReminder:        true,
			ReminderOffset:     15,
			ReminderOffsetUnit: domain.ReminderUnitMinutes,
		},
	})

	notifier := &mockNotifier{enabled: true}
	j := NewReminderJob(st, notifier, testMetrics(), zap.NewNop())
	j.now = func() time.Time { return now }

	j.Run()
	assert.Empty(t, notifier.sent)

	// Five minutes later the window is open
	j.now = func() time.Time { return now.Add(5 * time.Minute) }
	j.Run()
	assert.Len(t, notifier.sent, 1)
}
