package services

import "errors"

// Typed failures surfaced by the room coordinator. Handlers map these to
// HTTP statuses; nothing below is ever swallowed or downgraded.
var (
	ErrValidation   = errors.New("invalid input")
	ErrRoomNotFound = errors.New("room not found")
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("cart item not found")
	ErrInvalidCode  = errors.New("invalid or expired room code")
	ErrForbidden    = errors.New("caller lacks the required role")
	ErrAlreadyMember = errors.New("user is already a member of this room")
	ErrAlreadyAdmin  = errors.New("user is already an admin of this room")
	ErrNotAMember    = errors.New("user is not a member of this room")
	ErrRoomFull      = errors.New("room is at capacity")
	ErrRoomInactive  = errors.New("room is closed")

	ErrProductNotFound    = errors.New("product not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
