package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	stdpath "path"

	"github.com/codequest532/vyrona-social/internal/api/ws"
	"github.com/gorilla/websocket"
)

// SubscribeRoom opens the room's one-way event feed. It returns a channel of
// incoming events and a cancel function that closes the stream. The feed
// carries membership and cart change notices; the client re-fetches state on
// each event rather than trusting the payload.
func (c *APIClient) SubscribeRoom(roomID uint) (<-chan ws.Event, func(), error) {
	if c.baseURL == "" {
		return nil, nil, fmt.Errorf("client not initialized")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, nil, err
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = stdpath.Join(u.Path, fmt.Sprintf("rooms/%d/events", roomID))

	header := http.Header{}
	if c.accessToken != "" {
		header.Set("Authorization", "Bearer "+c.accessToken)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized && c.refreshToken != "" {
			if rerr := c.refreshTokens(); rerr == nil {
				header.Set("Authorization", "Bearer "+c.accessToken)
				conn, resp, err = websocket.DefaultDialer.Dial(u.String(), header)
			}
		}
		if err != nil {
			if resp != nil {
				return nil, nil, fmt.Errorf("event feed dial failed: %s", resp.Status)
			}
			return nil, nil, fmt.Errorf("event feed dial error: %w", err)
		}
	}

	ch := make(chan ws.Event, 32)
	go func() {
		defer close(ch)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var evt ws.Event
			if err := json.Unmarshal(data, &evt); err == nil {
				ch <- evt
			}
		}
	}()

	cancel := func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		)
		_ = conn.Close()
	}

	return ch, cancel, nil
}
