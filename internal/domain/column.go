package domain

// Column is a named bucket on the board. Its title doubles as the canonical
// status label; TaskIDs is the left-to-right card order within the column and
// every task id appears in exactly one column across the whole board.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"taskIds"`
}

// Contains reports whether the column's sequence lists the task id.
func (c Column) Contains(taskID string) bool {
	for _, id := range c.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// WithTask returns a copy of the column with the task id appended.
func (c Column) WithTask(taskID string) Column {
	out := c
	out.TaskIDs = make([]string, 0, len(c.TaskIDs)+1)
	out.TaskIDs = append(out.TaskIDs, c.TaskIDs...)
	out.TaskIDs = append(out.TaskIDs, taskID)
	return out
}

// WithoutTask returns a copy of the column with the task id removed.
func (c Column) WithoutTask(taskID string) Column {
	out := c
	out.TaskIDs = make([]string, 0, len(c.TaskIDs))
	for _, id := range c.TaskIDs {
		if id != taskID {
			out.TaskIDs = append(out.TaskIDs, id)
		}
	}
	return out
}
