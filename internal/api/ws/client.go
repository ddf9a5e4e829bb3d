package ws

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client represents a single websocket subscriber connection. The event feed
// is one-way: subscribers only receive; anything they send is discarded.
type Client struct {
	feed *Feed
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) readPump() {
	defer func() {
		c.feed.drop(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(1 << 12)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer func() { _ = c.conn.Close() }()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeRoomWS upgrades a connection and subscribes it to the room's event
// feed. Membership was already verified by the room middleware.
func ServeRoomWS(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	if idStr == "" {
		http.Error(w, "missing room id", http.StatusBadRequest)
		return
	}
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid room id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("ws upgrade error")
		return
	}

	feed := GetFeed(uint(id64))
	client := &Client{feed: feed, conn: conn, send: make(chan []byte, 256)}
	if !feed.subscribe(client) {
		// Room was deleted between the feed lookup and the attach.
		_ = conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
