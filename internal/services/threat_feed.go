package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
)

// ThreatFeedChannel is the Redis Pub/Sub channel for new advisories.
const ThreatFeedChannel = "threats:feed"

// ThreatEvent is the payload broadcast over Redis and WebSocket when a new
// advisory is published.
type ThreatEvent struct {
	Type      string         `json:"type"` // "threat_published"
	Threat    *models.Threat `json:"threat,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// FeedConn is the minimal interface our WebSocket implementation must satisfy.
type FeedConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// feedClient wraps one connection with a write lock. gorilla/websocket
// forbids concurrent writers on a connection, so every WriteJSON must hold mu.
type feedClient struct {
	mu   sync.Mutex
	conn FeedConn
}

// feedHub is a registry of connected dashboard clients.
type feedHub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*feedClient
}

var (
	threatHub        = &feedHub{clients: make(map[uuid.UUID]*feedClient)}
	feedRedisStarted sync.Once
)

// RegisterFeedConnection registers or replaces a user's feed connection.
func RegisterFeedConnection(userID uuid.UUID, conn FeedConn) {
	threatHub.mu.Lock()
	threatHub.clients[userID] = &feedClient{conn: conn}
	threatHub.mu.Unlock()
}

// UnregisterFeedConnection removes a user's feed connection.
func UnregisterFeedConnection(userID uuid.UUID) {
	threatHub.mu.Lock()
	delete(threatHub.clients, userID)
	threatHub.mu.Unlock()
}

// FanOutThreatEvent sends an event to all locally connected clients. Sends are
// best-effort and never block the caller; writes to any single connection are
// serialized through its feedClient lock.
func FanOutThreatEvent(event ThreatEvent) {
	threatHub.mu.RLock()
	clients := make([]*feedClient, 0, len(threatHub.clients))
	for _, c := range threatHub.clients {
		clients = append(clients, c)
	}
	threatHub.mu.RUnlock()

	for _, c := range clients {
		go func(c *feedClient) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("error writing threat event to websocket: %v", err)
			}
		}(c)
	}
}

// PublishThreatEvent publishes an advisory to Redis; called when an admin
// creates a new threat.
func PublishThreatEvent(ctx context.Context, event ThreatEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return database.RedisClient.Publish(ctx, ThreatFeedChannel, data).Err()
}

// StartThreatFeedSubscriber ensures a single shared Redis listener per instance.
func StartThreatFeedSubscriber(ctx context.Context) {
	feedRedisStarted.Do(func() {
		go runThreatFeedSubscriber(ctx)
	})
}

func runThreatFeedSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; threat feed subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.Subscribe(ctx, ThreatFeedChannel)
			defer pubsub.Close()

			log.Println("✅ Threat feed Redis subscriber started (channel: threats:feed)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event ThreatEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal threat event: %v", err)
					continue
				}

				// Fan out to local connections.
				FanOutThreatEvent(event)
			}
		}()
	}
}
