package metrics

// IncrementTaskCreated increments the task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementTaskMoved increments the board move counter
func (m *Metrics) IncrementTaskMoved() {
	m.safeExecute("IncrementTaskMoved", func() {
		m.TaskMovedTotal.Inc()
	})
}

// IncrementRemindersSent adds fired reminders to the reminder counter
func (m *Metrics) IncrementRemindersSent(count int) {
	m.safeExecute("IncrementRemindersSent", func() {
		m.RemindersSentTotal.Add(float64(count))
	})
}

// IncrementMessageSent increments the chat message counter
func (m *Metrics) IncrementMessageSent() {
	m.safeExecute("IncrementMessageSent", func() {
		m.MessagesSentTotal.Inc()
	})
}

// IncrementAutoReply increments the auto-reply counter
func (m *Metrics) IncrementAutoReply() {
	m.safeExecute("IncrementAutoReply", func() {
		m.AutoRepliesTotal.Inc()
	})
}

// IncrementUserDeleted increments the user removal counter
func (m *Metrics) IncrementUserDeleted() {
	m.safeExecute("IncrementUserDeleted", func() {
		m.UsersDeletedTotal.Inc()
	})
}

// IncrementSearch increments the search counter
func (m *Metrics) IncrementSearch() {
	m.safeExecute("IncrementSearch", func() {
		m.SearchesTotal.Inc()
	})
}

// SetTasksTotal sets the current board size gauge
func (m *Metrics) SetTasksTotal(count int) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}
