package domain

import "time"

// Conversation is a direct-message thread between exactly two participants.
// LastMessage/LastMessageTimestamp are denormalized copies of the most
// recently appended message and are recomputed on every append.
type Conversation struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	ParticipantIDs       []string   `json:"participantIds"`
	LastMessage          string     `json:"lastMessage,omitempty"`
	LastMessageTimestamp *time.Time `json:"lastMessageTimestamp,omitempty"`
}

// OtherParticipant returns the participant that is not userID.
func (c Conversation) OtherParticipant(userID string) (string, bool) {
	for _, id := range c.ParticipantIDs {
		if id != userID {
			return id, true
		}
	}
	return "", false
}

// HasParticipant reports whether userID takes part in the conversation.
func (c Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ChatMessage is one entry in a conversation's append-only log. Ordering
// within a conversation is by Timestamp ascending.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}
