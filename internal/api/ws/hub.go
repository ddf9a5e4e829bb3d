package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is a room-scoped notification pushed to subscribed clients whenever
// a mutation lands. Polling clients can ignore this feed entirely; it only
// accelerates what the next poll would reveal anyway.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	EventMemberJoined   = "member_joined"
	EventMemberLeft     = "member_left"
	EventMemberPromoted = "member_promoted"
	EventCartUpdated    = "cart_updated"
	EventRoomDeleted    = "room_deleted"
)

// Hub manages websocket feeds keyed by room ID.
type Hub struct {
	mu    sync.RWMutex
	feeds map[uint]*Feed
}

var hub = &Hub{feeds: make(map[uint]*Feed)}

func getHub() *Hub { return hub }

// GetFeed returns the existing feed for a room or creates a new one.
func GetFeed(roomID uint) *Feed {
	h := getHub()
	h.mu.RLock()
	f := h.feeds[roomID]
	h.mu.RUnlock()
	if f != nil {
		return f
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if f = h.feeds[roomID]; f == nil {
		f = newFeed(roomID)
		h.feeds[roomID] = f
	}
	return f
}

// BroadcastEvent sends the event to every subscriber of the room's feed.
func BroadcastEvent(roomID uint, eventType string, data any) {
	b, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logrus.WithError(err).Error("ws event marshal error")
		return
	}
	GetFeed(roomID).broadcast <- b
}

// CloseRoom tears down a deleted room's feed and disconnects subscribers.
func CloseRoom(roomID uint) {
	h := getHub()
	h.mu.Lock()
	f := h.feeds[roomID]
	delete(h.feeds, roomID)
	h.mu.Unlock()
	if f != nil {
		f.shutdown <- struct{}{}
	}
}
