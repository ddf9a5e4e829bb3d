package handlers

import (
	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"github.com/codequest532/vyrona-social/internal/services"
)

// Svcs holds initialized service singletons for handlers to use.
var Svcs struct {
	Auth       *services.AuthService
	Rooms      *services.RoomService
	Membership *services.MembershipService
	Cart       *services.CartService
}

func InitHandlers() {
	userRepo := repositories.DefaultUserRepository()

	Svcs.Auth = services.NewAuthService(userRepo)
	Svcs.Rooms = services.NewRoomService(config.DB)
	Svcs.Membership = services.NewMembershipService(config.DB, userRepo)
	Svcs.Cart = services.NewCartService(config.DB)
}
