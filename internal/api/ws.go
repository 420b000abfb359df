package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/healthassist-server/internal/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from other origins in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteWait  = 10 * time.Second
	maxChatBytes = 4096
)

// handleChat upgrades the connection and runs a request/reply chat loop.
// Each text frame from the client is answered with one assistant message.
func (s *Server) handleChat(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.deps.Logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxChatBytes)

	sessionLog := s.deps.Logger.WithField("chat_session", uuid.New().String())
	sessionLog.Info("Chat session started")

	if err := s.writeMessage(conn, s.deps.Chat.GreetingMessage()); err != nil {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sessionLog.WithError(err).Debug("Chat session ended unexpectedly")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := s.deps.Chat.Respond(string(data))
		if err := s.writeMessage(conn, reply); err != nil {
			sessionLog.WithError(err).Debug("Chat write failed")
			return
		}
	}
}

func (s *Server) writeMessage(conn *websocket.Conn, msg chat.Message) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(msg)
}
