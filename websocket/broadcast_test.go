// websocket/broadcast_test.go
package websocket

import (
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWSConn satisfies WSConn without a real network peer.
type fakeWSConn struct{}

func (fakeWSConn) WriteMessage(int, []byte) error    { return nil }
func (fakeWSConn) SetWriteDeadline(time.Time) error  { return nil }
func (fakeWSConn) ReadMessage() (int, []byte, error) { select {} }
func (fakeWSConn) Close() error                      { return nil }
func (fakeWSConn) RemoteAddr() net.Addr              { return &net.TCPAddr{} }
func (fakeWSConn) SetReadLimit(int64)                {}
func (fakeWSConn) SetReadDeadline(time.Time) error   { return nil }
func (fakeWSConn) SetPongHandler(func(string) error) {}

var handleMessagesOnce sync.Once

// startFeed starts the distribution loop once for the whole test binary.
func startFeed() {
	handleMessagesOnce.Do(func() { go HandleMessages() })
}

// subscribe registers a bare connection for a trip and returns its feed channel.
func subscribe(t *testing.T, tripID string) *Connection {
	t.Helper()
	c := &Connection{conn: fakeWSConn{}, send: make(chan []byte, 16), tripID: tripID}
	register(c)
	t.Cleanup(func() { unregister(c) })
	return c
}

func TestBroadcastCheckin_ReachesMatchingTrip(t *testing.T) {
	startFeed()
	watcher := subscribe(t, "trip-alpha")

	BroadcastCheckin("trip-alpha", map[string]interface{}{
		"action":         "checkinRecorded",
		"participant_id": "p1",
	})

	select {
	case raw := <-watcher.send:
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "checkinRecorded", msg["action"])
		assert.Equal(t, "trip-alpha", msg["tripId"])
	case <-time.After(2 * time.Second):
		t.Fatal("feed message never arrived")
	}
}

func TestBroadcastCheckin_FiltersOtherTrips(t *testing.T) {
	startFeed()
	watcher := subscribe(t, "trip-alpha")
	bystander := subscribe(t, "trip-beta")

	BroadcastCheckin("trip-alpha", map[string]interface{}{"action": "checkinRecorded"})

	select {
	case <-watcher.send:
	case <-time.After(2 * time.Second):
		t.Fatal("matching dashboard never received the event")
	}

	// the other trip's dashboard must stay silent
	select {
	case raw := <-bystander.send:
		t.Fatalf("dashboard for another trip received %s", raw)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestBroadcastCheckin_FullChannelDoesNotBlock(t *testing.T) {
	startFeed()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// far more events than the buffer holds; the sender must never block
		for i := 0; i < 500; i++ {
			BroadcastCheckin("trip-flood", map[string]interface{}{"action": "checkinRecorded"})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("BroadcastCheckin blocked on a saturated feed channel")
	}
}
