package models

import (
	"time"
)

// CartItem is a single cart line. RoomID nil means the item belongs to the
// user's personal cart rather than a shared room cart.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    *uint     `gorm:"index" json:"room_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Quantity  uint      `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartItemWithProduct joins a cart line with its product for display.
type CartItemWithProduct struct {
	ID          uint   `json:"id"`
	RoomID      *uint  `json:"room_id"`
	UserID      uint   `json:"user_id"`
	AddedBy     string `json:"added_by"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    uint   `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}
