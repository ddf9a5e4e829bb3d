package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/utils"
	"gorm.io/gorm"
)

// RoomMiddleware verifies the caller belongs to the room in the {id} path
// segment before the handler runs. Positive checks are cached briefly;
// mutating handlers still re-check the role inside their own transaction, so
// the cache only short-circuits reads.
func RoomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("userID").(uint)

		roomIDStr := r.PathValue("id")
		if roomIDStr == "" {
			http.Error(w, "Room ID is required", http.StatusBadRequest)
			return
		}

		cacheKey := fmt.Sprintf("membership:%v:%s", userID, roomIDStr)
		if isMemberVal, found := utils.MembershipCache.Get(cacheKey); found {
			if isMember, ok := isMemberVal.(bool); ok && isMember {
				next.ServeHTTP(w, r)
				return
			}
		}

		roomID, err := strconv.Atoi(roomIDStr)
		if err != nil {
			http.Error(w, "Invalid room ID format", http.StatusBadRequest)
			return
		}

		var membership models.Membership
		if err := config.DB.Where("room_id = ? AND user_id = ?", roomID, userID).First(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "You are not a member of this room", http.StatusForbidden)
			} else {
				http.Error(w, "Error retrieving room membership", http.StatusInternalServerError)
			}
			return
		}

		utils.MembershipCache.Set(cacheKey, true, time.Minute*5)
		next.ServeHTTP(w, r)
	})
}

// InvalidateMembership drops a cached membership check after an exit or
// removal so a revoked member cannot ride the cache window.
func InvalidateMembership(userID uint, roomID any) {
	utils.MembershipCache.Delete(fmt.Sprintf("membership:%v:%v", userID, roomID))
}
