package services

import (
	"regexp"
	"sync"
	"testing"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomCodeRe = regexp.MustCompile(`^[0-9A-Z]{6}$`)

func TestCreateRoom(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "alice")
	svc := NewRoomService(db)

	summary, err := svc.CreateRoom(creator.ID, creator.Name, "Book Club", "weekly haul", 2)
	require.NoError(t, err)

	assert.Regexp(t, roomCodeRe, summary.Code)
	assert.Equal(t, "Book Club", summary.Name)
	assert.True(t, summary.IsActive)
	assert.Equal(t, uint(2), summary.MaxMembers)
	assert.Equal(t, int64(1), summary.MemberCount)
	assert.Equal(t, int64(0), summary.CartTotal)

	var membership models.Membership
	require.NoError(t, db.Where("room_id = ? AND user_id = ?", summary.Id, creator.ID).First(&membership).Error)
	assert.Equal(t, models.RoleAdmin, membership.Role)
}

func TestCreateRoomEmptyName(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "alice")
	svc := NewRoomService(db)

	_, err := svc.CreateRoom(creator.ID, creator.Name, "   ", "", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoomDefaultCapacity(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "alice")
	svc := NewRoomService(db)

	summary, err := svc.CreateRoom(creator.ID, creator.Name, "Open House", "", 0)
	require.NoError(t, err)
	assert.Equal(t, uint(10), summary.MaxMembers)
}

func TestConcurrentCreatesGetDistinctCodes(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "alice")
	svc := NewRoomService(db)

	const n = 20
	var wg sync.WaitGroup
	codes := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := svc.CreateRoom(creator.ID, creator.Name, "Flash Sale", "", 0)
			if assert.NoError(t, err) {
				codes <- summary.Code
			}
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool)
	for code := range codes {
		assert.False(t, seen[code], "code %s allocated twice", code)
		seen[code] = true
	}
	assert.Len(t, seen, n)
}

func TestListRoomsNewestFirstWithAggregates(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	product := seedProduct(t, db, "chai", 500)

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))
	cart := NewCartService(db)

	first, err := rooms.CreateRoom(alice.ID, alice.Name, "First", "", 0)
	require.NoError(t, err)
	second, err := rooms.CreateRoom(alice.ID, alice.Name, "Second", "", 0)
	require.NoError(t, err)

	_, err = members.JoinByCode(bob.ID, bob.Name, second.Code)
	require.NoError(t, err)
	_, err = cart.AddItem(&second.Id, bob.ID, product.ID, 3)
	require.NoError(t, err)

	listed, err := rooms.ListRooms()
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byName := map[string]models.RoomSummary{}
	for _, s := range listed {
		byName[s.Name] = s
	}
	assert.Equal(t, int64(1), byName["First"].MemberCount)
	assert.Equal(t, int64(2), byName["Second"].MemberCount)
	assert.Equal(t, int64(1500), byName["Second"].CartTotal)
	_ = first
}

func TestListRoomsByUserScopesToMemberships(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	rooms := NewRoomService(db)

	_, err := rooms.CreateRoom(alice.ID, alice.Name, "Alice Only", "", 0)
	require.NoError(t, err)
	mine, err := rooms.CreateRoom(bob.ID, bob.Name, "Bob's Room", "", 0)
	require.NoError(t, err)

	listed, err := rooms.ListRoomsByUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.Id, listed[0].Id)
}

func TestDeleteRoomCascades(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	product := seedProduct(t, db, "chai", 500)

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))
	cart := NewCartService(db)

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Doomed", "", 0)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	_, err = cart.AddItem(&room.Id, bob.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, rooms.DeleteRoom(room.Id, alice.ID))

	var memberCount, itemCount int64
	require.NoError(t, db.Model(&models.Membership{}).Where("room_id = ?", room.Id).Count(&memberCount).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("room_id = ?", room.Id).Count(&itemCount).Error)
	assert.Zero(t, memberCount, "no membership may survive the cascade")
	assert.Zero(t, itemCount, "no cart line may survive the cascade")

	// The code is no longer joinable.
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	assert.ErrorIs(t, err, ErrInvalidCode)

	// Adding to the dead room fails instead of orphaning a row.
	_, err = cart.AddItem(&room.Id, alice.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestDeleteRoomRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Guarded", "", 0)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)

	// A plain member is rejected, twice, identically, with no state change.
	for i := 0; i < 2; i++ {
		err = rooms.DeleteRoom(room.Id, bob.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	}

	listed, err := rooms.ListRooms()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(2), listed[0].MemberCount)
}

func TestDeleteUnknownRoom(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	rooms := NewRoomService(db)

	assert.ErrorIs(t, rooms.DeleteRoom(9999, alice.ID), ErrRoomNotFound)
}

func TestGetRoom(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	rooms := NewRoomService(db)

	created, err := rooms.CreateRoom(alice.ID, alice.Name, "Book Club", "", 0)
	require.NoError(t, err)

	summary, err := rooms.GetRoom(created.Id, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Id, summary.Id)
	assert.Equal(t, int64(1), summary.MemberCount)
}

func TestGetRoomUnknownIsNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	rooms := NewRoomService(db)

	_, err := rooms.GetRoom(9999, alice.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetRoomNonMemberIsForbidden(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	mallory := seedUser(t, db, "mallory")
	rooms := NewRoomService(db)

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Book Club", "", 0)
	require.NoError(t, err)

	_, err = rooms.GetRoom(room.Id, mallory.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestFindByCodeIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Case Test", "", 0)
	require.NoError(t, err)

	joined, err := members.JoinByCode(bob.ID, bob.Name, toLower(room.Code))
	require.NoError(t, err)
	assert.Equal(t, room.Id, joined.Id)
}

func toLower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
