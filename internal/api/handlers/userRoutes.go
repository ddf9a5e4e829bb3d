package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
)

// HealthCheck lets clients probe the server before starting a session.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"Status": "ok"})
}

func GetUsers(w http.ResponseWriter, r *http.Request) {
	encoder := json.NewEncoder(w)

	idParam := r.URL.Query().Get("id")
	if idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil || id <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			encoder.Encode(map[string]any{"Status": "invalid ID"})
			return
		}

		var user models.User
		if err := config.DB.First(&user, id).Error; err != nil {
			w.WriteHeader(http.StatusNotFound)
			encoder.Encode(map[string]any{"Status": "User not found"})
			return
		}

		encoder.Encode(map[string]any{"User": user})
		return
	}

	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		encoder.Encode(map[string]any{"Status": "Failed to retrieve users"})
		return
	}
	encoder.Encode(map[string]any{"Users": users})
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if creds.Name == "" || creds.Password == "" {
		http.Error(w, "Invalid User", http.StatusBadRequest)
		return
	}

	accessToken, refreshToken, user, err := Svcs.Auth.Login(creds.Name, creds.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"Status":       "Login successful",
		"User":         user,
		"Token":        accessToken,
		"RefreshToken": refreshToken,
	})
}

// RefreshToken issues a fresh token pair against a still-valid refresh token.
func RefreshToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	access, refresh, err := Svcs.Auth.Refresh(body.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"AccessToken":  access,
		"RefreshToken": refresh,
	})
}

func CreateUser(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if creds.Name == "" || creds.Password == "" {
		http.Error(w, "Invalid User", http.StatusBadRequest)
		return
	}

	accessToken, refreshToken, user, err := Svcs.Auth.Register(creds.Name, creds.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"Status":       "User created successfully",
		"User":         user,
		"Token":        accessToken,
		"RefreshToken": refreshToken,
	})
}
