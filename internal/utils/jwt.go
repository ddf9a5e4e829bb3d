package utils

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func GetTokenPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".vyrona-social-config.json")
}

// SaveTokenPair persists the client-side token pair; used by the TUI client only.
func SaveTokenPair(tokenPair TokenPair) error {
	data, err := json.Marshal(tokenPair)
	if err != nil {
		return err
	}
	return os.WriteFile(GetTokenPath(), data, 0600)
}

func LoadTokenPair() (TokenPair, error) {
	var tokenPair TokenPair
	data, err := os.ReadFile(GetTokenPath())
	if err != nil {
		return tokenPair, err
	}
	err = json.Unmarshal(data, &tokenPair)
	return tokenPair, err
}

func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	return []byte(secret)
}

func GenerateJWTToken(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"username": username,
		"exp":      time.Now().Add(time.Minute * 15).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

func GenerateRefreshToken(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 168).Unix(), // 7 days
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// GetClaimsFromToken reads claims without verifying the signature. Meant for
// the client side, which holds no signing key; the server always verifies.
func GetClaimsFromToken(tokenString string) (map[string]any, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil || exp.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

// ValidateJWTToken parses and verifies a token, returning its claims.
func ValidateJWTToken(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
