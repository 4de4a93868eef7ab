package dto

// StartConversationRequest opens (or returns) the DM thread between the
// authenticated user and the given participant.
type StartConversationRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

// SendMessageRequest is the payload for appending a chat message.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}
