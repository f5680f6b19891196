package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/admission"
	"github.com/aescanero/dago-node-ftp/internal/config"
	"github.com/aescanero/dago-node-ftp/internal/events"
	"github.com/aescanero/dago-node-ftp/internal/ftpserver"
)

// Control actions.
const (
	ActionStart = "start"
	ActionStop  = "stop"
)

// Controller is the FTP service the worker drives.
type Controller interface {
	Start(ctx context.Context, p ftpserver.Params) bool
	Stop(ctx context.Context) error
}

// streamClient is the slice of the Redis client the worker consumes with.
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// ControlRequest asks the node to start or stop its FTP server.
type ControlRequest struct {
	RequestID string           `json:"request_id"`
	Action    string           `json:"action"`
	Params    ftpserver.Params `json:"params"`
}

// Worker consumes control requests from a Redis stream
type Worker struct {
	id            string
	nodeID        string
	redisClient   streamClient
	controller    Controller
	admitter      *admission.Admitter
	publisher     events.Publisher
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	blockTime     time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient streamClient,
	controller Controller,
	admitter *admission.Admitter,
	publisher events.Publisher,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            fmt.Sprintf("%s-%s", cfg.NodeID, uuid.NewString()[:8]),
		nodeID:        cfg.NodeID,
		redisClient:   redisClient,
		controller:    controller,
		admitter:      admitter,
		publisher:     publisher,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		streamKey:     cfg.ControlStream,
		consumerGroup: cfg.ConsumerGroup,
		blockTime:     cfg.BlockTime,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting control worker",
		zap.String("consumer", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing control requests
	go w.processControl()

	w.logger.Info("control worker started", zap.String("consumer", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight request, if any.
func (w *Worker) Stop(ctx context.Context) error {
	w.logger.Info("stopping control worker", zap.String("consumer", w.id))

	w.cancel()

	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.logger.Info("control worker stopped", zap.String("consumer", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processControl reads control requests until the worker is stopped
func (w *Worker) processControl() {
	defer close(w.done)
	w.logger.Info("starting control processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("control processing loop stopped")
			return
		default:
		}

		streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
			Group:    w.consumerGroup,
			Consumer: w.id,
			Streams:  []string{w.streamKey, ">"},
			Count:    1,
			Block:    w.blockTime,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
				continue
			}
			w.logger.Error("failed to read from stream", zap.Error(err))
			select {
			case <-w.ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				w.handleMessage(message)
			}
		}
	}
}

// handleMessage applies a single control request. The message is always
// acknowledged, a request that cannot be applied is reported as an event.
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing control request",
		zap.String("message_id", messageID),
	)
	defer w.acknowledgeMessage(messageID)

	request, err := parseControlRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse control request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.publish(events.TypeControlParseFailed, err.Error(), map[string]interface{}{
			"message_id": messageID,
		})
		return
	}

	w.apply(w.ctx, request)
}

// parseControlRequest parses a control request from a Redis message
func parseControlRequest(values map[string]interface{}) (*ControlRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request ControlRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal control request: %w", err)
	}

	request.Action = strings.ToLower(strings.TrimSpace(request.Action))
	switch request.Action {
	case ActionStart, ActionStop:
	default:
		return nil, fmt.Errorf("unknown action %q", request.Action)
	}

	return &request, nil
}

// apply runs an admitted request against the controller and publishes the outcome.
func (w *Worker) apply(ctx context.Context, request *ControlRequest) {
	fields := map[string]interface{}{
		"request_id": request.RequestID,
		"action":     request.Action,
	}

	if request.Action == ActionStart && w.admitter != nil {
		result := w.admitter.Admit(ctx, admission.Request{
			Action:   request.Action,
			Address:  request.Params.Address,
			Port:     request.Params.Port,
			Username: request.Params.Username,
			HomeDir:  request.Params.HomeDir,
		})
		if !result.Allowed() {
			w.logger.Warn("control request rejected",
				zap.String("request_id", request.RequestID),
				zap.String("reasoning", result.Reasoning),
			)
			fields["reasoning"] = result.Reasoning
			w.publish(events.TypeControlRejected, "control request rejected", fields)
			return
		}
	}

	var ok bool
	switch request.Action {
	case ActionStart:
		ok = w.controller.Start(ctx, request.Params)
	case ActionStop:
		if err := w.controller.Stop(ctx); err != nil {
			w.logger.Error("failed to stop ftp server",
				zap.String("request_id", request.RequestID),
				zap.Error(err),
			)
			fields["error"] = err.Error()
		} else {
			ok = true
		}
	}

	fields["ok"] = ok
	w.logger.Info("applied control request",
		zap.String("request_id", request.RequestID),
		zap.String("action", request.Action),
		zap.Bool("ok", ok),
	)
	w.publish(events.TypeControlResult, fmt.Sprintf("%s request applied", request.Action), fields)
}

func (w *Worker) publish(eventType, message string, fields map[string]interface{}) {
	ev := events.New(eventType, message, fields)
	ev.NodeID = w.nodeID
	if err := w.publisher.Publish(w.ctx, ev); err != nil {
		w.logger.Error("failed to publish event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	// The worker context may already be cancelled on shutdown.
	err := w.redisClient.XAck(context.Background(), w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
