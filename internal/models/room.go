package models

import (
	"time"
)

type Room struct {
	Id          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Code        string    `gorm:"type:varchar(12);uniqueIndex;not null" json:"code"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	MaxMembers  uint      `gorm:"type(int);default:10" json:"max_members"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RoomSummary is the read-time shape returned by room listings;
// MemberCount and CartTotal are recomputed on every query, never stored.
type RoomSummary struct {
	Room
	MemberCount int64 `json:"member_count"`
	CartTotal   int64 `json:"cart_total"`
}
