package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jaevor/go-nanoid"
)

const writeWait = 10 * time.Second

var errClientClosed = errors.New("client connection closed")

var genClientID, _ = nanoid.Standard(12)

// Client is a live duplex connection as the broadcaster sees it.
type Client interface {
	ID() string
	Send(v any) error
	Close()
}

type wsClient struct {
	id     string
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		id:   genClientID(),
		conn: conn,
	}
}

func (c *wsClient) ID() string {
	return c.id
}

// Send writes one text frame. Strings go out as-is, everything else is
// JSON-encoded. The write mutex keeps concurrent broadcasts from
// interleaving frames on one connection.
func (c *wsClient) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClientClosed
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if s, ok := v.(string); ok {
		return c.conn.WriteMessage(websocket.TextMessage, []byte(s))
	}
	return c.conn.WriteJSON(v)
}

func (c *wsClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	_ = c.conn.Close()
}
