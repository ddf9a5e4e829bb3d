package repositories

import (
	"strings"

	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	FindByID(id any) (*models.Room, error)
	FindActiveByCode(code string) (*models.Room, error)
	LockByID(id any) (*models.Room, error)
	CodeExists(code string) (bool, error)
	Create(room *models.Room) error
	Save(room *models.Room) error
	Deactivate(id any) error
	ListActiveSummaries() ([]models.RoomSummary, error)
	ListActiveSummariesByUser(userID uint) ([]models.RoomSummary, error)
	SummaryByID(id any) (*models.RoomSummary, error)
	DeleteInactiveBefore(cutoff any) (int64, error)
}

type GormRoomRepository struct{ db *gorm.DB }

func NewRoomRepository(db *gorm.DB) *GormRoomRepository { return &GormRoomRepository{db: db} }

func (r *GormRoomRepository) FindByID(id any) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindActiveByCode resolves a join code against active rooms only.
// Codes are stored upper-case; lookup is case-insensitive.
func (r *GormRoomRepository) FindActiveByCode(code string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("code = ? AND is_active = ?", strings.ToUpper(code), true).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// LockByID loads the room row under a row lock so capacity checks and the
// subsequent membership insert act as one atomic unit. SQLite (tests)
// serializes writers on its own and rejects FOR UPDATE, so the clause is
// only added on MySQL.
func (r *GormRoomRepository) LockByID(id any) (*models.Room, error) {
	tx := r.db
	if tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room models.Room
	if err := tx.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Room{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *GormRoomRepository) Create(room *models.Room) error { return r.db.Create(room).Error }
func (r *GormRoomRepository) Save(room *models.Room) error   { return r.db.Save(room).Error }

func (r *GormRoomRepository) Deactivate(id any) error {
	return r.db.Model(&models.Room{}).Where("id = ?", id).Update("is_active", false).Error
}

const summarySelect = `rooms.*,
	(SELECT COUNT(*) FROM memberships WHERE memberships.room_id = rooms.id) AS member_count,
	(SELECT COALESCE(SUM(cart_items.quantity * products.price), 0)
		FROM cart_items JOIN products ON products.id = cart_items.product_id
		WHERE cart_items.room_id = rooms.id) AS cart_total`

// ListActiveSummaries returns active rooms newest-first with live member
// counts and cart totals. Aggregates are computed per read, never cached.
func (r *GormRoomRepository) ListActiveSummaries() ([]models.RoomSummary, error) {
	var summaries []models.RoomSummary
	err := r.db.Table("rooms").
		Select(summarySelect).
		Where("rooms.is_active = ?", true).
		Order("rooms.created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *GormRoomRepository) ListActiveSummariesByUser(userID uint) ([]models.RoomSummary, error) {
	var summaries []models.RoomSummary
	sub := r.db.Table("memberships").Select("room_id").Where("user_id = ?", userID)
	err := r.db.Table("rooms").
		Select(summarySelect).
		Where("rooms.is_active = ? AND rooms.id IN (?)", true, sub).
		Order("rooms.created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *GormRoomRepository) SummaryByID(id any) (*models.RoomSummary, error) {
	var summary models.RoomSummary
	err := r.db.Table("rooms").
		Select(summarySelect).
		Where("rooms.id = ?", id).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	if summary.Id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &summary, nil
}

// DeleteInactiveBefore hard-deletes soft-deleted room rows older than the
// cutoff. Memberships and cart items were already removed by the delete
// cascade; this just frees the row and its code.
func (r *GormRoomRepository) DeleteInactiveBefore(cutoff any) (int64, error) {
	result := r.db.Where("is_active = ? AND updated_at < ?", false, cutoff).Delete(&models.Room{})
	return result.RowsAffected, result.Error
}

func DefaultRoomRepository() RoomRepository { return NewRoomRepository(config.DB) }
