package api

import (
	"net/http"
	"os"

	"github.com/codequest532/vyrona-social/internal/api/handlers"
	"github.com/codequest532/vyrona-social/internal/api/middleware"
	"github.com/sirupsen/logrus"
)

func authed(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(http.HandlerFunc(h))
}

func roomScoped(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(middleware.RoomMiddleware(http.HandlerFunc(h)))
}

// Router wires the route table.
func Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handlers.HealthCheck)

	// User routes
	mux.HandleFunc("GET /api/users", handlers.GetUsers)
	mux.HandleFunc("POST /api/users", handlers.CreateUser)
	mux.HandleFunc("POST /api/users/login", handlers.Login)
	mux.HandleFunc("POST /api/users/refresh", handlers.RefreshToken)

	// Room directory
	mux.Handle("GET /api/rooms", authed(handlers.GetRooms))
	mux.Handle("POST /api/rooms", authed(handlers.CreateRoom))
	mux.Handle("POST /api/rooms/join", authed(handlers.JoinRoom))
	mux.Handle("GET /api/rooms/{id}", roomScoped(handlers.GetRoom))
	mux.Handle("DELETE /api/rooms/{id}", authed(handlers.DeleteRoom))
	mux.Handle("POST /api/rooms/{id}/exit", authed(handlers.ExitRoom))

	// Membership
	mux.Handle("GET /api/rooms/{id}/members", roomScoped(handlers.GetMembers))
	mux.Handle("POST /api/rooms/{id}/members", roomScoped(handlers.AddMember))
	mux.Handle("DELETE /api/rooms/{id}/members/{userID}", roomScoped(handlers.RemoveMember))
	mux.Handle("POST /api/rooms/{id}/members/{userID}/promote", roomScoped(handlers.PromoteMember))

	// Catalog
	mux.Handle("GET /api/products", authed(handlers.GetProducts))
	mux.Handle("POST /api/products", authed(handlers.CreateProduct))

	// Shared room cart
	mux.Handle("GET /api/rooms/{id}/cart", roomScoped(handlers.GetRoomCart))
	mux.Handle("POST /api/rooms/{id}/cart", roomScoped(handlers.AddRoomCartItem))
	mux.Handle("PATCH /api/cart/items/{itemID}", authed(handlers.UpdateCartItem))
	mux.Handle("DELETE /api/cart/items/{itemID}", authed(handlers.RemoveCartItem))

	// Personal cart
	mux.Handle("GET /api/cart", authed(handlers.GetPersonalCart))
	mux.Handle("POST /api/cart", authed(handlers.AddPersonalCartItem))

	// Room event feed
	mux.Handle("GET /api/rooms/{id}/events", roomScoped(handlers.RoomEvents))

	return middleware.CheckCORS(mux)
}

// NewServer wires services and routes, then blocks serving them.
func NewServer() {
	handlers.InitHandlers()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("Server starting")
	logrus.Fatal(http.ListenAndServe(":"+port, Router()))
}
