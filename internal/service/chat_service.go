package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpro-api/internal/client"
	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/response"
	"taskpro-api/internal/store"
)

// Broadcaster pushes a committed message to connected websocket clients.
type Broadcaster interface {
	BroadcastMessage(conversationID string, message domain.ChatMessage)
}

// ChatService defines the interface for direct-message chat business logic
type ChatService interface {
	ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*domain.Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID string) ([]domain.ChatMessage, error)
	SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*domain.ChatMessage, error)
	SetBroadcaster(b Broadcaster)
}

// chatServiceImpl is the implementation of ChatService
type chatServiceImpl struct {
	store   *store.Store
	textGen client.TextGenClient
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time

	broadcaster Broadcaster

	// inFlight holds conversation ids with a pending auto-reply, so rapid
	// sends never stack generated replies on one thread.
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewChatService creates a new instance of ChatService
func NewChatService(st *store.Store, textGen client.TextGenClient, m *metrics.Metrics, logger *zap.Logger) ChatService {
	return &chatServiceImpl{
		store:    st,
		textGen:  textGen,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		inFlight: map[string]bool{},
	}
}

// SetBroadcaster attaches the websocket hub. Wired after construction
// because the hub needs the service's message log and vice versa.
func (s *chatServiceImpl) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ListConversations returns the user's conversation list with denormalized
// last-message summaries.
func (s *chatServiceImpl) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return s.store.State().ConversationsForUser(userID), nil
}

// StartConversation opens the DM thread between the user and the given
// participant, returning the existing thread when the pair already has one.
func (s *chatServiceImpl) StartConversation(ctx context.Context, userID string, req *dto.StartConversationRequest) (*domain.Conversation, error) {
	if req.ParticipantID == userID {
		return nil, response.NewAppError(response.ErrCodeValidation, "Cannot start a conversation with yourself", "")
	}

	var conversation domain.Conversation
	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		participant, ok := state.Users[req.ParticipantID]
		if !ok {
			return state, response.NewNotFoundError("User not found")
		}
		for _, c := range state.Conversations {
			if c.HasParticipant(userID) && c.HasParticipant(req.ParticipantID) {
				conversation = c
				return state, nil
			}
		}

		conversation = domain.Conversation{
			ID:             "conv-" + uuid.NewString(),
			Name:           participant.Name,
			ParticipantIDs: []string{userID, req.ParticipantID},
		}
		next := state
		next.Conversations = state.CloneConversations()
		next.Conversations[conversation.ID] = conversation
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListMessages returns the thread's messages oldest first. Only participants
// may read a thread.
func (s *chatServiceImpl) ListMessages(ctx context.Context, userID, conversationID string) ([]domain.ChatMessage, error) {
	state := s.store.State()
	conversation, ok := state.Conversations[conversationID]
	if !ok {
		return nil, response.NewNotFoundError("Conversation not found")
	}
	if !conversation.HasParticipant(userID) {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Not a participant of this conversation", "")
	}
	return state.MessagesForConversation(conversationID), nil
}

// SendMessage appends the user's message and refreshes the conversation
// summary in one transition, then kicks off a generated reply from the other
// participant when the text generator is configured. The reply is best
// effort; its failure never touches the committed message.
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*domain.ChatMessage, error) {
	message := domain.ChatMessage{
		ID:             "msg-" + uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       userID,
		Text:           req.Text,
		Timestamp:      s.now().UTC(),
	}

	err := s.store.Commit(ctx, func(state domain.AppState) (domain.AppState, error) {
		conversation, ok := state.Conversations[conversationID]
		if !ok {
			return state, response.NewNotFoundError("Conversation not found")
		}
		if !conversation.HasParticipant(userID) {
			return state, response.NewAppError(response.ErrCodeForbidden, "Not a participant of this conversation", "")
		}
		return appendMessage(state, conversation, message), nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementMessageSent()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(conversationID, message)
	}
	s.maybeAutoReply(conversationID, userID)
	return &message, nil
}

// maybeAutoReply spawns at most one pending generated reply per
// conversation.
func (s *chatServiceImpl) maybeAutoReply(conversationID, senderID string) {
	if s.textGen == nil || !s.textGen.Enabled() {
		return
	}

	s.mu.Lock()
	if s.inFlight[conversationID] {
		s.mu.Unlock()
		return
	}
	s.inFlight[conversationID] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, conversationID)
			s.mu.Unlock()
		}()
		s.autoReply(conversationID, senderID)
	}()
}

func (s *chatServiceImpl) autoReply(conversationID, senderID string) {
	state := s.store.State()
	conversation, ok := state.Conversations[conversationID]
	if !ok {
		return
	}
	otherID, ok := conversation.OtherParticipant(senderID)
	if !ok {
		return
	}
	sender, ok := state.Users[senderID]
	if !ok {
		return
	}
	other, ok := state.Users[otherID]
	if !ok {
		return
	}

	prompt := buildReplyPrompt(state, conversationID, sender, other)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reply, err := s.textGen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("Auto-reply generation failed",
			zap.String("conversation_id", conversationID), zap.Error(err))
		return
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return
	}

	message := domain.ChatMessage{
		ID:             "msg-" + uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       otherID,
		Text:           reply,
		Timestamp:      s.now().UTC(),
	}
	err = s.store.Commit(context.Background(), func(state domain.AppState) (domain.AppState, error) {
		conversation, ok := state.Conversations[conversationID]
		if !ok {
			return state, response.NewNotFoundError("Conversation not found")
		}
		return appendMessage(state, conversation, message), nil
	})
	if err != nil {
		s.logger.Warn("Failed to commit auto-reply", zap.Error(err))
		return
	}

	s.metrics.IncrementAutoReply()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(conversationID, message)
	}
}

// buildReplyPrompt renders the thread as a name-prefixed transcript and asks
// the generator to continue it as the other participant.
func buildReplyPrompt(state domain.AppState, conversationID string, sender, other domain.User) string {
	var transcript strings.Builder
	for _, m := range state.MessagesForConversation(conversationID) {
		name := other.Name
		if m.SenderID == sender.ID {
			name = sender.Name
		}
		fmt.Fprintf(&transcript, "%s: %s\n", name, m.Text)
	}
	return fmt.Sprintf("Esta é uma conversa entre %s e %s.\n\n%s%s:",
		sender.Name, other.Name, transcript.String(), other.Name)
}

// appendMessage installs one message and its conversation summary together.
func appendMessage(state domain.AppState, conversation domain.Conversation, message domain.ChatMessage) domain.AppState {
	next := state
	next.ChatMessages = state.CloneChatMessages()
	next.ChatMessages[message.ID] = message

	ts := message.Timestamp
	conversation.LastMessage = message.Text
	conversation.LastMessageTimestamp = &ts
	next.Conversations = state.CloneConversations()
	next.Conversations[conversation.ID] = conversation
	return next
}
