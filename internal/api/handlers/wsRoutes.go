package handlers

import (
	"net/http"

	"github.com/codequest532/vyrona-social/internal/api/ws"
)

// RoomEvents handles the websocket upgrade for a room's event feed.
func RoomEvents(w http.ResponseWriter, r *http.Request) {
	ws.ServeRoomWS(w, r)
}
