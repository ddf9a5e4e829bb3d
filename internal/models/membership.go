package models

import (
	"time"
)

type RoomRole string

const (
	RoleAdmin  RoomRole = "admin"
	RoleMember RoomRole = "member"
)

type Membership struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    uint      `gorm:"not null;index:idx_room_user,unique" json:"room_id"`
	UserID    uint      `gorm:"not null;index:idx_room_user,unique" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Role      RoomRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *Membership) IsAdmin() bool { return m.Role == RoleAdmin }
