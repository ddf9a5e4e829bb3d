package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(f *Feed) *Client {
	return &Client{feed: f, send: make(chan []byte, 8)}
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	const roomID = 9001

	feed := GetFeed(roomID)
	defer CloseRoom(roomID)

	c := newTestClient(feed)
	require.True(t, feed.subscribe(c))

	BroadcastEvent(roomID, EventCartUpdated, map[string]any{"room_id": roomID})

	select {
	case raw := <-c.send:
		var evt Event
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, EventCartUpdated, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the broadcast")
	}
}

func TestCloseRoomClosesSubscriberChannels(t *testing.T) {
	const roomID = 9002

	feed := GetFeed(roomID)
	c := newTestClient(feed)
	require.True(t, feed.subscribe(c))

	CloseRoom(roomID)

	select {
	case _, open := <-c.send:
		assert.False(t, open, "send channel should be closed after the room is torn down")
	case <-time.After(time.Second):
		t.Fatal("send channel still open after CloseRoom")
	}
}

// A subscriber arriving while the room is being deleted must be turned away
// instead of blocking on a run loop that already returned.
func TestSubscribeAfterCloseDoesNotBlock(t *testing.T) {
	const roomID = 9003

	feed := GetFeed(roomID)
	CloseRoom(roomID)

	result := make(chan bool, 1)
	go func() {
		result <- feed.subscribe(newTestClient(feed))
	}()

	select {
	case attached := <-result:
		assert.False(t, attached)
	case <-time.After(time.Second):
		t.Fatal("subscribe blocked after the feed shut down")
	}
}

func TestDropAfterCloseDoesNotBlock(t *testing.T) {
	const roomID = 9004

	feed := GetFeed(roomID)
	c := newTestClient(feed)
	require.True(t, feed.subscribe(c))

	CloseRoom(roomID)

	done := make(chan struct{})
	go func() {
		feed.drop(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drop blocked after the feed shut down")
	}
}
