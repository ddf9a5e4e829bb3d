package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/codequest532/vyrona-social/internal/api/ws"
)

type cartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

// GetProducts lists the catalog items a cart line can reference.
func GetProducts(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(r); !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	products, err := Svcs.Cart.ListProducts()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Products": products})
}

// CreateProduct adds an entry to the catalog.
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(r); !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	var body struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	product, err := Svcs.Cart.CreateProduct(body.Name, body.Price)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"Product": product})
}

// GetRoomCart returns the room's shared cart lines and the read-time total.
func GetRoomCart(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := Svcs.Cart.ListRoomItems(roomID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Items": items, "CartTotal": total})
}

// AddRoomCartItem adds a line to the room's shared cart.
func AddRoomCartItem(w http.ResponseWriter, r *http.Request) {
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

	var requestBody cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	item, err := Svcs.Cart.AddItem(&roomID, userID, requestBody.ProductID, requestBody.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ws.BroadcastEvent(roomID, ws.EventCartUpdated, map[string]any{"item_id": item.ID, "user_id": userID})
	writeJSON(w, http.StatusCreated, map[string]any{"Item": item})
}

// GetPersonalCart returns the caller's private (non-room) cart.
func GetPersonalCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	items, total, err := Svcs.Cart.ListPersonalItems(userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Items": items, "CartTotal": total})
}

// AddPersonalCartItem adds a line to the caller's private cart.
func AddPersonalCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}

	var requestBody cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	item, err := Svcs.Cart.AddItem(nil, userID, requestBody.ProductID, requestBody.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"Item": item})
}

// UpdateCartItem replaces a line's quantity; zero removes the line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	itemID, ok := parsePathID(r, "itemID")
	if !ok {
		http.Error(w, "Please provide a valid item ID", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Quantity uint `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	item, err := Svcs.Cart.FindItem(itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if err := Svcs.Cart.UpdateQuantity(itemID, userID, requestBody.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	if item.RoomID != nil {
		ws.BroadcastEvent(*item.RoomID, ws.EventCartUpdated, map[string]any{"item_id": itemID, "user_id": userID})
	}
	writeJSON(w, http.StatusOK, map[string]any{"Status": "Cart item updated"})
}

// RemoveCartItem deletes a line.
func RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing or invalid user ID", http.StatusUnauthorized)
		return
	}
	itemID, ok := parsePathID(r, "itemID")
	if !ok {
		http.Error(w, "Please provide a valid item ID", http.StatusBadRequest)
		return
	}

	item, err := Svcs.Cart.FindItem(itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if err := Svcs.Cart.RemoveItem(itemID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	if item.RoomID != nil {
		ws.BroadcastEvent(*item.RoomID, ws.EventCartUpdated, map[string]any{"item_id": itemID, "user_id": userID})
	}
	writeJSON(w, http.StatusOK, map[string]any{"Status": "Cart item removed"})
}
