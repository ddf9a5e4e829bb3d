package repositories

import (
	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Find(roomID any, userID any) (*models.Membership, error)
	Create(m *models.Membership) error
	Save(m *models.Membership) error
	Delete(m *models.Membership) error
	CountByRoom(roomID any) (int64, error)
	CountAdminsByRoom(roomID any) (int64, error)
	ListByRoom(roomID any) ([]models.Membership, error)
	EarliestJoined(roomID any) (*models.Membership, error)
	DeleteByRoomID(roomID any) error
}

type GormMembershipRepository struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) Find(roomID any, userID any) (*models.Membership, error) {
	var m models.Membership
	if err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMembershipRepository) Create(m *models.Membership) error { return r.db.Create(m).Error }
func (r *GormMembershipRepository) Save(m *models.Membership) error   { return r.db.Save(m).Error }
func (r *GormMembershipRepository) Delete(m *models.Membership) error {
	return r.db.Delete(m).Error
}

func (r *GormMembershipRepository) CountByRoom(roomID any) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}

func (r *GormMembershipRepository) CountAdminsByRoom(roomID any) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).
		Where("room_id = ? AND role = ?", roomID, models.RoleAdmin).
		Count(&count).Error
	return count, err
}

// ListByRoom returns memberships admin-first, then by join time.
func (r *GormMembershipRepository) ListByRoom(roomID any) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Where("room_id = ?", roomID).
		Order("CASE WHEN role = 'admin' THEN 0 ELSE 1 END, joined_at ASC, id ASC").
		Find(&memberships).Error
	return memberships, err
}

// EarliestJoined returns the longest-standing member of a room; used to pick
// a replacement admin when the last admin exits.
func (r *GormMembershipRepository) EarliestJoined(roomID any) (*models.Membership, error) {
	var m models.Membership
	err := r.db.Where("room_id = ?", roomID).Order("joined_at ASC, id ASC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMembershipRepository) DeleteByRoomID(roomID any) error {
	return r.db.Where("room_id = ?", roomID).Delete(&models.Membership{}).Error
}

func DefaultMembershipRepository() MembershipRepository {
	return NewMembershipRepository(config.DB)
}
