package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultMaxMembers = 10

type RoomService struct {
	db   *gorm.DB
	gate AccessGate
}

func NewRoomService(db *gorm.DB) *RoomService { return &RoomService{db: db} }

// CreateRoom persists a new room and its creator's admin membership as one
// transaction. The room code is collision-checked against existing rooms;
// a lost insert race against a concurrent create retries with a fresh code.
func (s *RoomService) CreateRoom(creatorID uint, creatorName, name, description string, maxMembers uint) (*models.RoomSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}
	if maxMembers == 0 {
		maxMembers = defaultMaxMembers
	}

	const maxAttempts = 3
	var room *models.Room
	for attempt := 0; attempt < maxAttempts; attempt++ {
		room = &models.Room{
			Name:        name,
			Description: strings.TrimSpace(description),
			CreatorID:   creatorID,
			IsActive:    true,
			MaxMembers:  maxMembers,
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			roomRepo := repositories.NewRoomRepository(tx)
			code, err := generateRoomCode(roomRepo)
			if err != nil {
				return err
			}
			room.Code = code
			if err := roomRepo.Create(room); err != nil {
				return err
			}
			membership := &models.Membership{
				RoomID: room.Id,
				UserID: creatorID,
				Name:   creatorName,
				Role:   models.RoleAdmin,
			}
			return repositories.NewMembershipRepository(tx).Create(membership)
		})
		if err == nil {
			break
		}
		if isDuplicateEntry(err) {
			logrus.WithFields(logrus.Fields{"code": room.Code, "attempt": attempt + 1}).
				Warn("Room code insert race, retrying with a fresh code")
			room = nil
			continue
		}
		logrus.WithError(err).WithField("creator_id", creatorID).Error("Failed to create room")
		return nil, err
	}
	if room == nil || room.Id == 0 {
		return nil, fmt.Errorf("failed to allocate a unique room code after %d attempts", maxAttempts)
	}

	logrus.WithFields(logrus.Fields{"room_id": room.Id, "code": room.Code, "creator_id": creatorID}).
		Info("Room created")
	return repositories.NewRoomRepository(s.db).SummaryByID(room.Id)
}

// ListRooms returns all active rooms with live member counts and cart totals,
// newest first.
func (s *RoomService) ListRooms() ([]models.RoomSummary, error) {
	return repositories.NewRoomRepository(s.db).ListActiveSummaries()
}

// ListRoomsByUser scopes the listing to rooms the user belongs to.
func (s *RoomService) ListRoomsByUser(userID uint) ([]models.RoomSummary, error) {
	return repositories.NewRoomRepository(s.db).ListActiveSummariesByUser(userID)
}

// GetRoom returns a single active room with aggregates, gated on membership.
// Existence is checked before the gate so an unknown room reads as not-found
// rather than forbidden, same as every other room-scoped operation.
func (s *RoomService) GetRoom(roomID uint, callerID uint) (*models.RoomSummary, error) {
	summary, err := repositories.NewRoomRepository(s.db).SummaryByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !summary.IsActive {
		return nil, ErrRoomNotFound
	}
	if _, err := s.gate.RequireMember(s.db, roomID, callerID); err != nil {
		return nil, err
	}
	return summary, nil
}

// DeleteRoom cascades removal of the room's memberships and cart items and
// deactivates the room, all in one transaction. Only an admin of the room may
// delete it. A racing add against the room fails once the transaction lands
// because add paths re-check is_active under their own transaction.
func (s *RoomService) DeleteRoom(roomID uint, callerID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		roomRepo := repositories.NewRoomRepository(tx)
		room, err := roomRepo.LockByID(roomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if !room.IsActive {
			return ErrRoomNotFound
		}
		if _, err := s.gate.RequireAdmin(tx, roomID, callerID); err != nil {
			return err
		}
		if err := repositories.NewCartRepository(tx).DeleteByRoomID(roomID); err != nil {
			return err
		}
		if err := repositories.NewMembershipRepository(tx).DeleteByRoomID(roomID); err != nil {
			return err
		}
		return roomRepo.Deactivate(roomID)
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"room_id": roomID, "caller_id": callerID}).Info("Room deleted")
	return nil
}

// generateRoomCode allocates a 6 character alphanumeric code that no existing
// room holds. Runs inside the create transaction; the unique index on code is
// the final arbiter for concurrent creates.
func generateRoomCode(repo repositories.RoomRepository) (string, error) {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const codeLength = 6
	const maxAttempts = 10

	b := make([]byte, codeLength)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		for i := range b {
			b[i] = letters[int(b[i])%len(letters)]
		}
		code := string(b)

		exists, err := repo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique room code after %d attempts", maxAttempts)
}
