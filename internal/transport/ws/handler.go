package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"innerparts/internal/model"
	"innerparts/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // chat turns carry full transcripts

	chatTurnTimeout = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket chat connections
type Handler struct {
	authSvc *service.AuthService
	chatSvc *service.ChatService
}

// NewHandler creates a new WebSocket handler
func NewHandler(authSvc *service.AuthService, chatSvc *service.ChatService) *Handler {
	return &Handler{
		authSvc: authSvc,
		chatSvc: chatSvc,
	}
}

// connection is one live chat session
type connection struct {
	uid  string
	send chan []byte
}

// ChatWS handles GET /v1/ws/chat
func (h *Handler) ChatWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateUserToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &connection{
		uid:  claims.UID,
		send: make(chan []byte, 16),
	}

	log.Printf("User %s connected to chat via WebSocket", claims.UID)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *connection) {
	defer func() {
		close(conn.send)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var req model.ChatRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			conn.reply(&model.ChatResponse{Success: false, Error: "invalid chat message"})
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), chatTurnTimeout)
		resp, err := h.chatSvc.Chat(ctx, conn.uid, &req)
		cancel()
		if err != nil {
			conn.reply(&model.ChatResponse{Success: false, Error: "Chat error: " + err.Error()})
			continue
		}
		conn.reply(resp)
	}
}

func (c *connection) reply(resp *model.ChatResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("WebSocket marshal error: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("WebSocket send buffer full for user %s, dropping reply", c.uid)
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
