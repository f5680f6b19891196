package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event types.
const (
	TypeStarted            = "ftp.started"
	TypeStopped            = "ftp.stopped"
	TypeStartFailed        = "ftp.start_failed"
	TypeConfigIncomplete   = "ftp.config_incomplete"
	TypeControlResult      = "ftp.control_result"
	TypeControlRejected    = "ftp.control_rejected"
	TypeControlParseFailed = "ftp.control_parse_failed"
)

// Event is a single message on the event stream.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	NodeID    string                 `json:"node_id"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New creates an event with a fresh ID and the current UTC time.
func New(eventType, message string, fields map[string]interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event. It is used when no Redis is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// streamAdder is the slice of the Redis client used for publishing.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher implements Publisher using Redis Streams
type RedisPublisher struct {
	client streamAdder
	stream string
	nodeID string
	logger *zap.Logger
}

// NewRedisPublisher creates a publisher writing to stream. Events without a
// node ID are stamped with nodeID.
func NewRedisPublisher(client streamAdder, stream, nodeID string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: stream,
		nodeID: nodeID,
		logger: logger,
	}
}

// Publish adds the event to the stream as a JSON "data" field
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	if event.NodeID == "" {
		event.NodeID = p.nodeID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type": event.Type,
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published event",
		zap.String("stream", p.stream),
		zap.String("type", event.Type),
		zap.String("entry_id", id),
	)
	return nil
}
