package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// slowFeedConn counts writes and detects overlapping WriteJSON calls, which
// gorilla/websocket treats as a fatal concurrent-write error.
type slowFeedConn struct {
	inFlight int32
	overlaps int32
	writes   int32
}

func (c *slowFeedConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(20 * time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func (c *slowFeedConn) Close() error { return nil }

func TestFanOutSerializesWritesPerConnection(t *testing.T) {
	userID := uuid.New()
	conn := &slowFeedConn{}

	RegisterFeedConnection(userID, conn)
	defer UnregisterFeedConnection(userID)

	// Two advisories published back to back; both sends target the same
	// connection and must not run concurrently.
	FanOutThreatEvent(ThreatEvent{Type: "threat_published"})
	FanOutThreatEvent(ThreatEvent{Type: "threat_published"})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&conn.writes) == 2
	}, 2*time.Second, 5*time.Millisecond, "both events should be delivered")

	require.Zero(t, atomic.LoadInt32(&conn.overlaps), "writes to one connection must be serialized")
}

func TestFanOutReachesAllConnections(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	connA, connB := &slowFeedConn{}, &slowFeedConn{}

	RegisterFeedConnection(first, connA)
	RegisterFeedConnection(second, connB)
	defer UnregisterFeedConnection(first)
	defer UnregisterFeedConnection(second)

	FanOutThreatEvent(ThreatEvent{Type: "threat_published"})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&connA.writes) == 1 && atomic.LoadInt32(&connB.writes) == 1
	}, 2*time.Second, 5*time.Millisecond)
}
