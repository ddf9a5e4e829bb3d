package services

import (
	"errors"
	"strings"
	"time"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"github.com/codequest532/vyrona-social/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Login(username, password string) (access, refresh string, user models.User, err error) {
	u, err := s.users.FindByName(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", models.User{}, ErrInvalidCredentials
		}
		return "", "", models.User{}, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return "", "", models.User{}, ErrInvalidCredentials
	}
	access, err = utils.GenerateJWTToken(u.ID, u.Name)
	if err != nil {
		return "", "", models.User{}, err
	}
	refresh, err = utils.GenerateRefreshToken(u.ID, u.Name)
	if err != nil {
		return "", "", models.User{}, err
	}
	now := time.Now()
	u.LastLogin = &now
	_ = s.users.Save(u)
	return access, refresh, *u, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user row
// is re-read so a deleted account cannot keep minting tokens.
func (s *AuthService) Refresh(refreshToken string) (access, refresh string, err error) {
	claims, err := utils.ValidateJWTToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	idf, ok := claims["userID"].(float64)
	if !ok {
		return "", "", ErrInvalidCredentials
	}
	u, err := s.users.FindByID(uint(idf))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	access, err = utils.GenerateJWTToken(u.ID, u.Name)
	if err != nil {
		return "", "", err
	}
	refresh, err = utils.GenerateRefreshToken(u.ID, u.Name)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) Register(username, password string) (access, refresh string, user models.User, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "", models.User{}, ErrValidation
	}
	if err := utils.ValidatePassword(password); err != nil {
		return "", "", models.User{}, ErrValidation
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", "", models.User{}, err
	}
	u := models.User{Name: username, Password: hashed}
	now := time.Now()
	u.LastLogin = &now
	if err := s.users.Create(&u); err != nil {
		if isDuplicateEntry(err) {
			return "", "", models.User{}, ErrUserExists
		}
		return "", "", models.User{}, err
	}
	access, err = utils.GenerateJWTToken(u.ID, u.Name)
	if err != nil {
		return "", "", models.User{}, err
	}
	refresh, err = utils.GenerateRefreshToken(u.ID, u.Name)
	if err != nil {
		return "", "", models.User{}, err
	}
	return access, refresh, u, nil
}
