package domain

import "sort"

// AppState is the whole normalized app document: the unit of persistence and
// the unit of mutation. It is treated as an immutable value: mutations build
// a new AppState with the touched collections copied and replaced, and
// install it atomically, so readers never observe a partial update.
type AppState struct {
	Tasks         map[string]Task         `json:"tasks"`
	Users         map[string]User         `json:"users"`
	Columns       map[string]Column       `json:"columns"`
	ColumnOrder   []string                `json:"columnOrder"`
	Automations   []AutomationRule        `json:"automations"`
	Documents     []Document              `json:"documents"`
	Conversations map[string]Conversation `json:"conversations"`
	ChatMessages  map[string]ChatMessage  `json:"chatMessages"`
}

// CloneTasks returns a shallow copy of the task map.
func (s AppState) CloneTasks() map[string]Task {
	out := make(map[string]Task, len(s.Tasks))
	for id, t := range s.Tasks {
		out[id] = t
	}
	return out
}

// CloneUsers returns a shallow copy of the user map.
func (s AppState) CloneUsers() map[string]User {
	out := make(map[string]User, len(s.Users))
	for id, u := range s.Users {
		out[id] = u
	}
	return out
}

// CloneColumns returns a shallow copy of the column map.
func (s AppState) CloneColumns() map[string]Column {
	out := make(map[string]Column, len(s.Columns))
	for id, c := range s.Columns {
		out[id] = c
	}
	return out
}

// CloneDocuments returns a copy of the document sequence.
func (s AppState) CloneDocuments() []Document {
	return append([]Document(nil), s.Documents...)
}

// CloneAutomations returns a copy of the automation-rule sequence.
func (s AppState) CloneAutomations() []AutomationRule {
	return append([]AutomationRule(nil), s.Automations...)
}

// CloneConversations returns a shallow copy of the conversation map.
func (s AppState) CloneConversations() map[string]Conversation {
	out := make(map[string]Conversation, len(s.Conversations))
	for id, c := range s.Conversations {
		out[id] = c
	}
	return out
}

// CloneChatMessages returns a shallow copy of the message map.
func (s AppState) CloneChatMessages() map[string]ChatMessage {
	out := make(map[string]ChatMessage, len(s.ChatMessages))
	for id, m := range s.ChatMessages {
		out[id] = m
	}
	return out
}

// ColumnContaining returns the column whose TaskIDs sequence lists taskID.
func (s AppState) ColumnContaining(taskID string) (Column, bool) {
	for _, id := range s.ColumnOrder {
		if col, ok := s.Columns[id]; ok && col.Contains(taskID) {
			return col, true
		}
	}
	// Columns missing from ColumnOrder are still scanned.
	for _, col := range s.Columns {
		if col.Contains(taskID) {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnByTitle returns the column whose title equals the status label.
func (s AppState) ColumnByTitle(title string) (Column, bool) {
	for _, id := range s.ColumnOrder {
		if col, ok := s.Columns[id]; ok && col.Title == title {
			return col, true
		}
	}
	for _, col := range s.Columns {
		if col.Title == title {
			return col, true
		}
	}
	return Column{}, false
}

// FirstColumn returns the first column in board order.
func (s AppState) FirstColumn() (Column, bool) {
	for _, id := range s.ColumnOrder {
		if col, ok := s.Columns[id]; ok {
			return col, true
		}
	}
	return Column{}, false
}

// OrderedColumns returns the columns in board order.
func (s AppState) OrderedColumns() []Column {
	out := make([]Column, 0, len(s.ColumnOrder))
	for _, id := range s.ColumnOrder {
		if col, ok := s.Columns[id]; ok {
			out = append(out, col)
		}
	}
	return out
}

// MessagesForConversation returns the conversation's messages ordered by
// timestamp ascending.
func (s AppState) MessagesForConversation(conversationID string) []ChatMessage {
	var out []ChatMessage
	for _, m := range s.ChatMessages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// ConversationsForUser returns all conversations the user takes part in.
func (s AppState) ConversationsForUser(userID string) []Conversation {
	var out []Conversation
	for _, c := range s.Conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
