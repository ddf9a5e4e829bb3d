package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinByCode(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Book Club", "", 2)
	require.NoError(t, err)

	joined, err := members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	assert.Equal(t, room.Id, joined.Id)

	summary, err := rooms.GetRoom(room.Id, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.MemberCount)
}

func TestJoinByCodeRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Book Club", "", 0)
	require.NoError(t, err)

	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	// The creator is a member already too.
	_, err = members.JoinByCode(alice.ID, alice.Name, room.Code)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoinByCodeUnknownCode(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob")
	members := NewMembershipService(db, stubUsers(db))

	_, err := members.JoinByCode(bob.ID, bob.Name, "ZZZZZZ")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = members.JoinByCode(bob.ID, bob.Name, "")
	assert.ErrorIs(t, err, ErrValidation)
}

// Capacity property from the room contract: k+extra concurrent joins against
// a fresh room of capacity k yield exactly k members, never more.
func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	const capacity = 5
	const joiners = capacity + 4 // creator holds one seat

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Flash Drop", "", capacity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, joiners)
	for i := 0; i < joiners; i++ {
		u := seedUser(t, db, fmt.Sprintf("joiner-%d", i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := members.JoinByCode(u.ID, u.Name, room.Code)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, full int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrRoomFull):
			full++
		}
	}
	assert.Equal(t, capacity-1, wins)
	assert.Equal(t, joiners-(capacity-1), full)

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).Where("room_id = ?", room.Id).Count(&count).Error)
	assert.Equal(t, int64(capacity), count)
}

func TestAddMemberByAdmin(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Invite Only", "", 0)
	require.NoError(t, err)

	membership, err := members.AddMember(room.Id, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, membership.UserID)
	assert.Equal(t, models.RoleMember, membership.Role)

	// Non-admin cannot add.
	_, err = members.AddMember(room.Id, bob.ID, "carol")
	assert.ErrorIs(t, err, ErrForbidden)

	// Unknown user name.
	_, err = members.AddMember(room.Id, alice.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_ = carol
}

func TestRemoveMemberGating(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Moderated", "", 0)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	_, err = members.JoinByCode(carol.ID, carol.Name, room.Code)
	require.NoError(t, err)

	// Member cannot remove anyone; identical failure on retry, no state change.
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, members.RemoveMember(room.Id, bob.ID, carol.ID), ErrForbidden)
	}
	list, err := members.ListMembers(room.Id, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	// Admin removes; target disappears.
	require.NoError(t, members.RemoveMember(room.Id, alice.ID, carol.ID))
	list, err = members.ListMembers(room.Id, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Removing a non-member reports NotAMember.
	assert.ErrorIs(t, members.RemoveMember(room.Id, alice.ID, carol.ID), ErrNotAMember)

	// Self-removal goes through ExitRoom instead.
	assert.ErrorIs(t, members.RemoveMember(room.Id, alice.ID, alice.ID), ErrValidation)
}

func TestPromoteGrantsRealPrivilege(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Promotion", "", 0)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	_, err = members.JoinByCode(carol.ID, carol.Name, room.Code)
	require.NoError(t, err)

	// Bob cannot promote or remove before being promoted.
	assert.ErrorIs(t, members.PromoteMember(room.Id, bob.ID, carol.ID), ErrForbidden)
	assert.ErrorIs(t, members.RemoveMember(room.Id, bob.ID, carol.ID), ErrForbidden)

	require.NoError(t, members.PromoteMember(room.Id, alice.ID, bob.ID))
	assert.ErrorIs(t, members.PromoteMember(room.Id, alice.ID, bob.ID), ErrAlreadyAdmin)

	// Promotion granted actual privilege.
	require.NoError(t, members.RemoveMember(room.Id, bob.ID, carol.ID))

	assert.ErrorIs(t, members.PromoteMember(room.Id, alice.ID, carol.ID), ErrNotAMember)
}

func TestExitRoomPromotesEarliestMember(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Succession", "", 0)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	_, err = members.JoinByCode(carol.ID, carol.Name, room.Code)
	require.NoError(t, err)

	// The only admin leaves; the room must not be orphaned.
	require.NoError(t, members.ExitRoom(room.Id, alice.ID))

	list, err := members.ListMembers(room.Id, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, bob.ID, list[0].UserID, "earliest remaining member leads the list")
	assert.Equal(t, models.RoleAdmin, list[0].Role)
	assert.Equal(t, models.RoleMember, list[1].Role)
}

func TestExitRoomLastMemberClosesRoom(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Ghost Town", "", 0)
	require.NoError(t, err)
	require.NoError(t, members.ExitRoom(room.Id, alice.ID))

	var stored models.Room
	require.NoError(t, db.First(&stored, room.Id).Error)
	assert.False(t, stored.IsActive)

	listed, err := rooms.ListRooms()
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestExitRoomNotAMember(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Members Only", "", 0)
	require.NoError(t, err)

	assert.ErrorIs(t, members.ExitRoom(room.Id, bob.ID), ErrNotAMember)
}

func TestListMembersOrderAndGate(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	outsider := seedUser(t, db, "mallory")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Ordered", "", 0)
	require.NoError(t, err)
	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)

	list, err := members.ListMembers(room.Id, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.RoleAdmin, list[0].Role)
	assert.Equal(t, alice.ID, list[0].UserID)

	_, err = members.ListMembers(room.Id, outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestJoinFullRoom(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	rooms := NewRoomService(db)
	members := NewMembershipService(db, stubUsers(db))

	room, err := rooms.CreateRoom(alice.ID, alice.Name, "Book Club", "", 2)
	require.NoError(t, err)

	_, err = members.JoinByCode(bob.ID, bob.Name, room.Code)
	require.NoError(t, err)
	_, err = members.JoinByCode(carol.ID, carol.Name, room.Code)
	assert.ErrorIs(t, err, ErrRoomFull)
}
