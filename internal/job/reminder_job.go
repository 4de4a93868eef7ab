package job

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskpro-api/internal/client"
	"taskpro-api/internal/domain"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/store"
)

const (
	reminderTitle = "Lembrete de Tarefa - Task Pro"
	reminderBody  = "Sua tarefa \"%s\" precisa de atenção!"
)

// ReminderJob periodically sweeps the board for tasks whose reminder window
// is open: the due date minus the configured offset has been reached, the
// due date itself has not passed, and no reminder went out yet. Each hit is
// pushed to the notification sink and marked sent in one batch transition.
type ReminderJob struct {
	store    *store.Store
	notifier client.NotifierClient
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderJob creates a new ReminderJob instance
func NewReminderJob(st *store.Store, notifier client.NotifierClient, m *metrics.Metrics, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{
		store:    st,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one reminder sweep. With the notification sink disabled the
// sweep is a no-op, leaving every reminder unsent for a later run.
func (j *ReminderJob) Run() {
	if j.notifier == nil || !j.notifier.Enabled() {
		return
	}
	ctx := context.Background()
	now := j.now()

	var due []domain.Task
	sweptDue := map[string]time.Time{}
	for _, task := range j.store.State().Tasks {
		if task.ReminderDue(now) {
			due = append(due, task)
			sweptDue[task.ID] = *task.DueDate
		}
	}
	if len(due) == 0 {
		return
	}

	var sentIDs []string
	for _, task := range due {
		if err := j.notifier.Notify(ctx, reminderTitle, fmt.Sprintf(reminderBody, task.Title)); err != nil {
			j.logger.Error("Failed to send task reminder",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			continue
		}
		sentIDs = append(sentIDs, task.ID)
	}
	if len(sentIDs) == 0 {
		return
	}

	err := j.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		next := state
		next.Tasks = state.CloneTasks()
		for _, id := range sentIDs {
			task, ok := next.Tasks[id]
			if !ok {
				// Deleted between the sweep and the commit.
				continue
			}
			if task.DueDate == nil || !task.DueDate.Equal(sweptDue[id]) {
				// Rescheduled while the notify was in flight; the rearmed
				// reminder belongs to the new due date.
				continue
			}
			task = task.Clone()
			task.ReminderSent = true
			next.Tasks[id] = task
		}
		return next, nil
	})
	if err != nil {
		j.logger.Error("Failed to mark reminders as sent",
			zap.Int("count", len(sentIDs)),
			zap.Error(err),
		)
		return
	}

	j.metrics.IncrementRemindersSent(len(sentIDs))
	j.logger.Info("Reminder sweep completed",
		zap.Int("due", len(due)),
		zap.Int("sent", len(sentIDs)),
	)
}
