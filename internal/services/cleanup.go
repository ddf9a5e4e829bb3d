package services

import (
	"time"

	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
)

// PurgeClosedRooms hard-deletes rooms that were closed more than 30 days ago,
// freeing their codes for reuse. Their memberships and cart items were
// removed when the room closed.
func PurgeClosedRooms() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -30)
	return repositories.NewRoomRepository(config.DB).DeleteInactiveBefore(cutoff)
}

// PurgeOrphanedRows removes membership and cart rows whose room no longer
// exists. The delete cascade should never leave any, so this is a repair
// sweep for rows predating it.
func PurgeOrphanedRows() (int64, error) {
	roomless := config.DB.Table("rooms").Select("id")

	members := config.DB.Where("room_id NOT IN (?)", roomless).Delete(&models.Membership{})
	if members.Error != nil {
		return 0, members.Error
	}
	items := config.DB.Where("room_id IS NOT NULL AND room_id NOT IN (?)", roomless).Delete(&models.CartItem{})
	if items.Error != nil {
		return members.RowsAffected, items.Error
	}
	return members.RowsAffected + items.RowsAffected, nil
}
