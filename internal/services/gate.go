package services

import (
	"errors"
	"strings"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"gorm.io/gorm"
)

// AccessGate is the single place role checks happen. Every method takes the
// caller's transaction handle so the check and the guarded write share one
// transaction; a member demoted or removed between check and write cannot
// leave a stale-authorized write behind.
type AccessGate struct{}

// RequireMember returns the caller's membership in the room, or ErrForbidden
// if there is none.
func (AccessGate) RequireMember(db *gorm.DB, roomID uint, userID uint) (*models.Membership, error) {
	m, err := repositories.NewMembershipRepository(db).Find(roomID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return m, nil
}

// RequireAdmin returns the caller's membership if it carries the admin role,
// or ErrForbidden otherwise. A non-member and a plain member fail the same
// way; callers cannot distinguish "not in room" from "not admin".
func (g AccessGate) RequireAdmin(db *gorm.DB, roomID uint, userID uint) (*models.Membership, error) {
	m, err := g.RequireMember(db, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !m.IsAdmin() {
		return nil, ErrForbidden
	}
	return m, nil
}

// isDuplicateEntry reports whether err is a unique-constraint violation from
// any of the supported dialects.
func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
