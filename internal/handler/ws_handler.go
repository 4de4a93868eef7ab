package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskpro-api/internal/domain"
	"taskpro-api/internal/dto"
	"taskpro-api/internal/service"
	"taskpro-api/internal/store"
	"taskpro-api/internal/util"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSMessage is the envelope for every frame on the chat websocket.
type WSMessage struct {
	Type           string              `json:"type"`
	ConversationID string              `json:"conversationId,omitempty"`
	Text           string              `json:"text,omitempty"`
	UserID         string              `json:"userId,omitempty"`
	Message        *domain.ChatMessage `json:"message,omitempty"`
	Timestamp      time.Time           `json:"timestamp,omitempty"`
}

// wsClient is one websocket connection pinned to a conversation.
type wsClient struct {
	conn           *websocket.Conn
	send           chan []byte
	conversationID string
	userID         string
}

// Hub tracks connected clients per conversation and fans committed messages
// out to them. It implements service.Broadcaster.
type Hub struct {
	clients    map[string]map[*wsClient]bool
	clientsMu  sync.RWMutex
	register   chan *wsClient
	unregister chan *wsClient
	logger     *zap.Logger
}

// NewHub creates a new Hub instance and starts its bookkeeping loop.
func NewHub(logger *zap.Logger) *Hub {
	hub := &Hub{
		clients:    make(map[string]map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		logger:     logger,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.conversationID] == nil {
				h.clients[client.conversationID] = make(map[*wsClient]bool)
			}
			h.clients[client.conversationID][client] = true
			h.clientsMu.Unlock()
			h.logger.Info("Chat client connected",
				zap.String("conversation_id", client.conversationID),
				zap.String("user_id", client.userID))

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.conversationID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.conversationID)
					}
				}
			}
			h.clientsMu.Unlock()
			h.logger.Info("Chat client disconnected",
				zap.String("conversation_id", client.conversationID),
				zap.String("user_id", client.userID))
		}
	}
}

// BroadcastMessage pushes a committed message to every client watching its
// conversation.
func (h *Hub) BroadcastMessage(conversationID string, message domain.ChatMessage) {
	payload, err := json.Marshal(WSMessage{
		Type:           "NEW_MESSAGE",
		ConversationID: conversationID,
		Message:        &message,
		Timestamp:      message.Timestamp,
	})
	if err != nil {
		h.logger.Warn("Failed to encode broadcast message", zap.Error(err))
		return
	}
	h.broadcastToConversation(conversationID, payload)
}

func (h *Hub) broadcastToConversation(conversationID string, payload []byte) {
	h.clientsMu.RLock()
	clients := h.clients[conversationID]
	targets := make([]*wsClient, 0, len(clients))
	for client := range clients {
		targets = append(targets, client)
	}
	h.clientsMu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- payload:
		default:
			h.unregister <- client
		}
	}
}

// WSHandler upgrades chat websocket connections and relays frames to the
// chat service.
type WSHandler struct {
	hub         *Hub
	store       *store.Store
	chatService service.ChatService
	jwtSecret   string
	logger      *zap.Logger
}

// NewWSHandler creates a new WSHandler instance
func NewWSHandler(hub *Hub, st *store.Store, chatService service.ChatService, jwtSecret string, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:         hub,
		store:       st,
		chatService: chatService,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
}

// HandleWebSocket connects a participant to a conversation's live feed.
// The session token rides in the query string because browsers cannot set
// headers on websocket upgrades.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conversationID := c.Param("conversationId")

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}
	userID, err := util.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conversation, ok := h.store.State().Conversations[conversationID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if !conversation.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:           conn,
		send:           make(chan []byte, 256),
		conversationID: conversationID,
		userID:         userID,
	}
	h.hub.register <- client

	go h.writePump(client)
	h.readPump(client)
}

func (h *WSHandler) readPump(client *wsClient) {
	defer func() {
		h.hub.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(payload, &wsMsg); err != nil {
			h.logger.Warn("Failed to parse message", zap.Error(err))
			continue
		}
		if err := h.handleMessage(client, &wsMsg); err != nil {
			h.logger.Error("Failed to handle message", zap.Error(err))
		}
	}
}

func (h *WSHandler) writePump(client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) handleMessage(client *wsClient, wsMsg *WSMessage) error {
	switch wsMsg.Type {
	case "MESSAGE":
		// Commits through the same path as the REST endpoint; the hub echo
		// comes from the service broadcast.
		req := dto.SendMessageRequest{Text: wsMsg.Text}
		_, err := h.chatService.SendMessage(context.Background(), client.userID, client.conversationID, &req)
		return err
	case "TYPING_START":
		return h.broadcastTyping(client, true)
	case "TYPING_STOP":
		return h.broadcastTyping(client, false)
	default:
		h.logger.Warn("Unknown message type", zap.String("type", wsMsg.Type))
	}
	return nil
}

func (h *WSHandler) broadcastTyping(client *wsClient, isTyping bool) error {
	eventType := "USER_TYPING_STOP"
	if isTyping {
		eventType = "USER_TYPING"
	}

	payload, err := json.Marshal(WSMessage{
		Type:           eventType,
		ConversationID: client.conversationID,
		UserID:         client.userID,
	})
	if err != nil {
		return err
	}
	h.hub.broadcastToConversation(client.conversationID, payload)
	return nil
}
