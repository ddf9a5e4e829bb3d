package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codequest532/vyrona-social/internal/api"
	"github.com/codequest532/vyrona-social/internal/api/handlers"
	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/utils"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAPI(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	// Each test gets a fresh database, so IDs repeat; stale cache entries
	// from an earlier test must not satisfy this test's membership checks.
	utils.MembershipCache.Flush()
	utils.AuthCache.Flush()

	config.DB = db
	handlers.InitHandlers()
	return api.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func registerUser(t *testing.T, router http.Handler, name string) string {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/api/users", "", map[string]any{
		"name":     name,
		"password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", name, w.Body.String())
	token, _ := resp["Token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRoomLifecycleOverHTTP(t *testing.T) {
	router := setupAPI(t)

	aliceToken := registerUser(t, router, "alice")
	bobToken := registerUser(t, router, "bob")
	carolToken := registerUser(t, router, "carol")

	// Unauthenticated listing is rejected.
	w, _ := doJSON(t, router, http.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Alice creates a two-seat room.
	w, resp := doJSON(t, router, http.MethodPost, "/api/rooms", aliceToken, map[string]any{
		"name":        "Book Club",
		"description": "monthly order",
		"max_members": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	room := resp["Room"].(map[string]any)
	roomID := uint(room["id"].(float64))
	code := room["code"].(string)
	require.NotEmpty(t, code)
	assert.Equal(t, float64(1), room["member_count"])

	// Creating with an empty name is a validation failure.
	w, _ = doJSON(t, router, http.MethodPost, "/api/rooms", aliceToken, map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bob joins by code; a bogus code is not found.
	w, _ = doJSON(t, router, http.MethodPost, "/api/rooms/join", bobToken, map[string]any{"code": "NOPE42"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, router, http.MethodPost, "/api/rooms/join", bobToken, map[string]any{"code": code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The room is full now; carol is turned away with a conflict.
	w, _ = doJSON(t, router, http.MethodPost, "/api/rooms/join", carolToken, map[string]any{"code": code})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Shared cart: bob adds a product, alice sees the live total.
	product := models.Product{Name: "tea", Price: 500}
	require.NoError(t, config.DB.Create(&product).Error)

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/cart", roomID), bobToken, map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/rooms/%d/cart", roomID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1000), resp["CartTotal"])

	// Members list is admin-first and membership-gated.
	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/rooms/%d/members", roomID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	membersList := resp["Members"].([]any)
	require.Len(t, membersList, 2)
	assert.Equal(t, "admin", membersList[0].(map[string]any)["role"])

	w, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/rooms/%d/members", roomID), carolToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A plain member cannot delete the room.
	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The admin can; the listing goes empty.
	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp = doJSON(t, router, http.MethodGet, "/api/rooms", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["Rooms"])
}

func TestPromotionOverHTTP(t *testing.T) {
	router := setupAPI(t)

	aliceToken := registerUser(t, router, "anna")
	bobToken := registerUser(t, router, "bert")
	_ = registerUser(t, router, "cleo")

	w, resp := doJSON(t, router, http.MethodPost, "/api/rooms", aliceToken, map[string]any{"name": "Promoted"})
	require.Equal(t, http.StatusCreated, w.Code)
	room := resp["Room"].(map[string]any)
	roomID := uint(room["id"].(float64))
	code := room["code"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/rooms/join", bobToken, map[string]any{"code": code})
	require.Equal(t, http.StatusOK, w.Code)

	var bob, cleo models.User
	require.NoError(t, config.DB.Where("name = ?", "bert").First(&bob).Error)
	require.NoError(t, config.DB.Where("name = ?", "cleo").First(&cleo).Error)

	// Admin adds cleo by name, then bob (still a member) fails to promote her.
	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/members", roomID), aliceToken, map[string]any{"name": "cleo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/members/%d/promote", roomID, cleo.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice promotes bob; bob can now remove cleo.
	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/members/%d/promote", roomID, bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/members/%d/promote", roomID, bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "second promotion is a conflict")

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/rooms/%d/members/%d", roomID, cleo.ID), bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestExitRoomOverHTTP(t *testing.T) {
	router := setupAPI(t)

	aliceToken := registerUser(t, router, "amy")
	bobToken := registerUser(t, router, "ben")

	w, resp := doJSON(t, router, http.MethodPost, "/api/rooms", aliceToken, map[string]any{"name": "Exiting"})
	require.Equal(t, http.StatusCreated, w.Code)
	room := resp["Room"].(map[string]any)
	roomID := uint(room["id"].(float64))
	code := room["code"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/rooms/join", bobToken, map[string]any{"code": code})
	require.Equal(t, http.StatusOK, w.Code)

	// Admin exits; ben inherits the room.
	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/exit", roomID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/rooms/%d/members", roomID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	membersList := resp["Members"].([]any)
	require.Len(t, membersList, 1)
	assert.Equal(t, "admin", membersList[0].(map[string]any)["role"])

	// Exiting twice is not-found: the membership is gone.
	w, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/rooms/%d/exit", roomID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefreshTokenOverHTTP(t *testing.T) {
	router := setupAPI(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/users", "", map[string]any{
		"name":     "alice",
		"password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	refresh, _ := resp["RefreshToken"].(string)
	require.NotEmpty(t, refresh)

	w, resp = doJSON(t, router, http.MethodPost, "/api/users/refresh", "", map[string]any{
		"refreshToken": refresh,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	access, _ := resp["AccessToken"].(string)
	require.NotEmpty(t, access)
	assert.NotEmpty(t, resp["RefreshToken"])

	// The rotated access token works against an authenticated route.
	w, _ = doJSON(t, router, http.MethodGet, "/api/rooms", access, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/users/refresh", "", map[string]any{
		"refreshToken": "not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
