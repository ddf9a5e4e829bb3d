package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/codequest532/vyrona-social/internal/api/middleware"
	"github.com/codequest532/vyrona-social/internal/api/ws"
)

func parsePathID(r *http.Request, segment string) (uint, bool) {
	raw := r.PathValue(segment)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetRooms lists active rooms with live member counts and cart totals.
// ?mine=1 restricts the listing to rooms the caller belongs to.
func GetRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	mine, _ := strconv.ParseBool(r.URL.Query().Get("mine"))
	var err error
	rooms := []any{}
	if mine {
		summaries, listErr := Svcs.Rooms.ListRoomsByUser(userID)
		err = listErr
		for _, s := range summaries {
			rooms = append(rooms, s)
		}
	} else {
		summaries, listErr := Svcs.Rooms.ListRooms()
		err = listErr
		for _, s := range summaries {
			rooms = append(rooms, s)
		}
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Rooms": rooms})
}

func GetRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}

	summary, err := Svcs.Rooms.GetRoom(roomID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Room": summary})
}

func CreateRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	var requestBody struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		MaxMembers  uint   `json:"max_members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	summary, err := Svcs.Rooms.CreateRoom(userID, callerName(r), requestBody.Name, requestBody.Description, requestBody.MaxMembers)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"Room": summary})
}

func JoinRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	var requestBody struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	room, err := Svcs.Membership.JoinByCode(userID, callerName(r), requestBody.Code)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ws.BroadcastEvent(room.Id, ws.EventMemberJoined, map[string]any{"user_id": userID, "name": callerName(r)})
	writeJSON(w, http.StatusOK, map[string]any{
		"Status": "Joined room successfully",
		"Room":   room,
	})
}

func ExitRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}

	middleware.InvalidateMembership(userID, r.PathValue("id"))
	if err := Svcs.Membership.ExitRoom(roomID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	ws.BroadcastEvent(roomID, ws.EventMemberLeft, map[string]any{"user_id": userID})
	writeJSON(w, http.StatusOK, map[string]any{"Status": "Left room successfully"})
}

func DeleteRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}

	if err := Svcs.Rooms.DeleteRoom(roomID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	ws.BroadcastEvent(roomID, ws.EventRoomDeleted, nil)
	ws.CloseRoom(roomID)
	writeJSON(w, http.StatusOK, map[string]any{"Status": "Deleted room successfully"})
}

func GetMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}

	members, err := Svcs.Membership.ListMembers(roomID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Members": members})
}

func AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil || requestBody.Name == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	membership, err := Svcs.Membership.AddMember(roomID, userID, requestBody.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ws.BroadcastEvent(roomID, ws.EventMemberJoined, map[string]any{"user_id": membership.UserID, "name": membership.Name})
	writeJSON(w, http.StatusCreated, map[string]any{"Membership": membership})
}

func RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}
	targetID, ok := parsePathID(r, "userID")
	if !ok {
		http.Error(w, "Please provide a valid user ID", http.StatusBadRequest)
		return
	}

	if err := Svcs.Membership.RemoveMember(roomID, userID, targetID); err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.InvalidateMembership(targetID, r.PathValue("id"))
	ws.BroadcastEvent(roomID, ws.EventMemberLeft, map[string]any{"user_id": targetID})
	writeJSON(w, http.StatusOK, map[string]any{"Status": "Member removed successfully"})
}

func PromoteMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	roomID, ok := parsePathID(r, "id")
	if !ok {
		http.Error(w, "Please provide a valid room ID", http.StatusBadRequest)
		return
	}
	targetID, ok := parsePathID(r, "userID")
	if !ok {
		http.Error(w, "Please provide a valid user ID", http.StatusBadRequest)
		return
	}

	if err := Svcs.Membership.PromoteMember(roomID, userID, targetID); err != nil {
		handleServiceError(w, err)
		return
	}

	ws.BroadcastEvent(roomID, ws.EventMemberPromoted, map[string]any{"user_id": targetID})
	writeJSON(w, http.StatusOK, map[string]any{"Status": "Member promoted successfully"})
}
