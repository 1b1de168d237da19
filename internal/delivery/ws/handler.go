package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxMessageSize = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	broadcaster *Broadcaster
	logger      *zap.Logger
}

func NewHandler(broadcaster *Broadcaster, logger *zap.Logger) *Handler {
	return &Handler{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Handle upgrades the request and runs the connection's receive loop
// until the client goes away.
func (h *Handler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newWSClient(conn)
	h.broadcaster.Register(client)
	defer h.broadcaster.Deregister(client)

	conn.SetReadLimit(maxMessageSize)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.String("client", client.ID()), zap.Error(err))
			}
			return
		}
		h.broadcaster.Handle(client, string(message))
	}
}
