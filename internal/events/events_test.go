package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisPublisherPublish(t *testing.T) {
	t.Parallel()
	stream := &fakeStream{}
	p := NewRedisPublisher(stream, "ftp.events", "node-a", zap.NewNop())

	ev := New(TypeStarted, "ftp server started", map[string]interface{}{"port": 2121})
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, stream.args, 1)
	args := stream.args[0]
	assert.Equal(t, "ftp.events", args.Stream)

	values, ok := args.Values.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, TypeStarted, values["type"])

	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, "node-a", decoded.NodeID)
	assert.Equal(t, "ftp server started", decoded.Message)
	assert.EqualValues(t, 2121, decoded.Fields["port"])
}

func TestRedisPublisherKeepsExplicitNodeID(t *testing.T) {
	t.Parallel()
	stream := &fakeStream{}
	p := NewRedisPublisher(stream, "s", "node-a", zap.NewNop())

	ev := New(TypeStopped, "stopped", nil)
	ev.NodeID = "node-b"
	require.NoError(t, p.Publish(context.Background(), ev))

	values := stream.args[0].Values.(map[string]interface{})
	assert.Contains(t, values["data"], `"node_id":"node-b"`)
}

func TestRedisPublisherError(t *testing.T) {
	t.Parallel()
	p := NewRedisPublisher(&fakeStream{err: errors.New("connection refused")}, "s", "n", zap.NewNop())

	err := p.Publish(context.Background(), New(TypeStopped, "stopped", nil))
	assert.ErrorContains(t, err, "failed to publish event: connection refused")
}

func TestNewEvent(t *testing.T) {
	t.Parallel()
	a := New(TypeStarted, "m", nil)
	b := New(TypeStarted, "m", nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.NoError(t, Nop{}.Publish(context.Background(), a))
}
