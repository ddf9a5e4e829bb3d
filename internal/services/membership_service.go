package services

import (
	"errors"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MembershipService struct {
	db    *gorm.DB
	users repositories.UserRepository
	gate  AccessGate
}

func NewMembershipService(db *gorm.DB, users repositories.UserRepository) *MembershipService {
	return &MembershipService{db: db, users: users}
}

// JoinByCode resolves a share code to an active room and adds the caller as a
// plain member. The capacity check and the membership insert run under a row
// lock on the room so two joins racing for the last seat cannot both win.
func (s *MembershipService) JoinByCode(userID uint, username, code string) (*models.Room, error) {
	if code == "" {
		return nil, ErrValidation
	}
	var room *models.Room
	err := s.db.Transaction(func(tx *gorm.DB) error {
		roomRepo := repositories.NewRoomRepository(tx)
		found, err := roomRepo.FindActiveByCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCode
			}
			return err
		}
		room = found
		return s.addMemberTx(tx, room, userID, username, models.RoleMember)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"room_id": room.Id, "user_id": userID}).Info("User joined room by code")
	return room, nil
}

// AddMember is the admin-driven counterpart to JoinByCode: an admin of the
// room adds another user by name.
func (s *MembershipService) AddMember(roomID uint, callerID uint, targetName string) (*models.Membership, error) {
	target, err := s.users.FindByName(targetName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var membership *models.Membership
	err = s.db.Transaction(func(tx *gorm.DB) error {
		room, err := s.activeRoomLocked(tx, roomID)
		if err != nil {
			return err
		}
		if _, err := s.gate.RequireAdmin(tx, roomID, callerID); err != nil {
			return err
		}
		if err := s.addMemberTx(tx, room, target.ID, target.Name, models.RoleMember); err != nil {
			return err
		}
		membership, err = repositories.NewMembershipRepository(tx).Find(roomID, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": target.ID, "added_by": callerID}).
		Info("Member added to room")
	return membership, nil
}

// RemoveMember deletes the target's membership. Admin only; admins remove
// themselves through ExitRoom so the replacement-admin path always runs.
func (s *MembershipService) RemoveMember(roomID uint, callerID uint, targetUserID uint) error {
	if callerID == targetUserID {
		return ErrValidation
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.roomByID(tx, roomID); err != nil {
			return err
		}
		if _, err := s.gate.RequireAdmin(tx, roomID, callerID); err != nil {
			return err
		}
		memberRepo := repositories.NewMembershipRepository(tx)
		target, err := memberRepo.Find(roomID, targetUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAMember
			}
			return err
		}
		return memberRepo.Delete(target)
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": targetUserID, "removed_by": callerID}).
		Info("Member removed from room")
	return nil
}

// PromoteMember grants the admin role to an existing member. Promotion is the
// only way to gain admin and only an admin may grant it.
func (s *MembershipService) PromoteMember(roomID uint, callerID uint, targetUserID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.roomByID(tx, roomID); err != nil {
			return err
		}
		if _, err := s.gate.RequireAdmin(tx, roomID, callerID); err != nil {
			return err
		}
		memberRepo := repositories.NewMembershipRepository(tx)
		target, err := memberRepo.Find(roomID, targetUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAMember
			}
			return err
		}
		if target.IsAdmin() {
			return ErrAlreadyAdmin
		}
		target.Role = models.RoleAdmin
		return memberRepo.Save(target)
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": targetUserID, "promoted_by": callerID}).
		Info("Member promoted to admin")
	return nil
}

// ExitRoom removes the caller's own membership. Always permitted. When the
// last member leaves the room is closed; when the departing user was the
// last admin but members remain, the earliest-joined member is promoted so
// the room is never left admin-less.
func (s *MembershipService) ExitRoom(roomID uint, userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMembershipRepository(tx)
		membership, err := memberRepo.Find(roomID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAMember
			}
			return err
		}
		if err := memberRepo.Delete(membership); err != nil {
			return err
		}

		remaining, err := memberRepo.CountByRoom(roomID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			// Last one out closes the room.
			if err := repositories.NewCartRepository(tx).DeleteByRoomID(roomID); err != nil {
				return err
			}
			return repositories.NewRoomRepository(tx).Deactivate(roomID)
		}

		if membership.IsAdmin() {
			admins, err := memberRepo.CountAdminsByRoom(roomID)
			if err != nil {
				return err
			}
			if admins == 0 {
				successor, err := memberRepo.EarliestJoined(roomID)
				if err != nil {
					return err
				}
				successor.Role = models.RoleAdmin
				if err := memberRepo.Save(successor); err != nil {
					return err
				}
				logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": successor.UserID}).
					Info("Promoted earliest member after admin exit")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID}).Info("User exited room")
	return nil
}

// ListMembers returns the room's memberships admin-first. Caller must be a
// member of the room.
func (s *MembershipService) ListMembers(roomID uint, callerID uint) ([]models.Membership, error) {
	if _, err := s.roomByID(s.db, roomID); err != nil {
		return nil, err
	}
	if _, err := s.gate.RequireMember(s.db, roomID, callerID); err != nil {
		return nil, err
	}
	return repositories.NewMembershipRepository(s.db).ListByRoom(roomID)
}

// addMemberTx performs the capacity-checked insert. The caller must already
// hold (or be about to take) the room row lock via activeRoomLocked or
// FindActiveByCode inside the same transaction.
func (s *MembershipService) addMemberTx(tx *gorm.DB, room *models.Room, userID uint, username string, role models.RoomRole) error {
	roomRepo := repositories.NewRoomRepository(tx)
	locked, err := roomRepo.LockByID(room.Id)
	if err != nil {
		return err
	}
	if !locked.IsActive {
		return ErrRoomInactive
	}

	memberRepo := repositories.NewMembershipRepository(tx)
	if _, err := memberRepo.Find(room.Id, userID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	count, err := memberRepo.CountByRoom(room.Id)
	if err != nil {
		return err
	}
	if count >= int64(locked.MaxMembers) {
		return ErrRoomFull
	}

	err = memberRepo.Create(&models.Membership{
		RoomID: room.Id,
		UserID: userID,
		Name:   username,
		Role:   role,
	})
	if isDuplicateEntry(err) {
		// Lost a same-user race; the membership exists either way.
		return ErrAlreadyMember
	}
	return err
}

// activeRoomLocked loads the room under a row lock and verifies it is active.
func (s *MembershipService) activeRoomLocked(tx *gorm.DB, roomID uint) (*models.Room, error) {
	room, err := repositories.NewRoomRepository(tx).LockByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	return room, nil
}

// roomByID verifies the room exists and is active, without locking.
func (s *MembershipService) roomByID(db *gorm.DB, roomID uint) (*models.Room, error) {
	room, err := repositories.NewRoomRepository(db).FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	return room, nil
}
