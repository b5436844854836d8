package socket

import (
	"net/http"
	"time"

	"stickyboard/pkg/logger"

	"github.com/gorilla/websocket"
)

// pongWait must comfortably exceed pingPeriod so one lost pong does not
// kill a healthy connection. Vars so tests can shorten them.
var (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin allows connections from the dev frontend origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one WebSocket subscription to a table's change feed.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Table  string
	UserID string
	Send   chan []byte
}

// ServeWs upgrades the connection and registers it with the hub. The table
// comes from the query string and defaults to the notes table.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	table := r.URL.Query().Get("table")
	if table == "" {
		table = TableNotes
	}

	client := &Client{
		Hub:    hub,
		Conn:   conn,
		Table:  table,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains inbound frames. The feed is one-way; reading is only
// needed to notice the peer going away.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				// Hub closed the channel; the subscription is over.
				c.Conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Connection is dead
			}
		}
	}
}
