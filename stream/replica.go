// Package stream provides a DynamoDB Streams handler that keeps an in-memory
// replica of a mirrored store.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/roster/internal/shard"
	"github.com/jacentio/roster/store"
)

// Handler applies mirror table stream events to a replica store.
//
// Inserted items are appended to the replica; modified items overwrite the
// replica's scores. Removals are ignored because records are never removed
// from a store. Redelivered events are harmless: an insert for a key the
// replica already holds is skipped.
type Handler struct {
	replica *store.Store
	storeID string
	logger  *slog.Logger
}

// NewHandler creates a new stream handler. When storeID is not empty, events
// for other stores are ignored.
func NewHandler(replica *store.Store, storeID string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		replica: replica,
		storeID: storeID,
		logger:  logger,
	}
}

// Replica returns the store kept up to date by the handler.
func (h *Handler) Replica() *store.Store { return h.replica }

// HandleRecordStream processes DynamoDB stream events from the mirror table.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleRecordStream(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(_ context.Context, record events.DynamoDBEventRecord) error {
	image := record.Change.NewImage
	if record.EventName == "REMOVE" {
		image = record.Change.OldImage
	}

	pk := getStringAttr(image, "pk")
	key, ok := shard.KeyFromSK(getStringAttr(image, "sk"))
	if !ok || !h.ownsPK(pk) {
		return nil
	}

	switch record.EventName {
	case "INSERT":
		return h.insert(key, image)
	case "MODIFY":
		return h.modify(key, image)
	default:
		h.logger.Debug("ignoring stream event",
			"event", record.EventName,
			"key", key,
		)
		return nil
	}
}

func (h *Handler) ownsPK(pk string) bool {
	if h.storeID == "" {
		return true
	}
	return strings.HasPrefix(pk, shard.StorePrefix(h.storeID)+"#")
}

func (h *Handler) insert(key string, image map[string]events.DynamoDBAttributeValue) error {
	r, err := recordFromImage(key, image)
	if err != nil {
		// Validation failures are permanent; retrying would only block the shard.
		h.logger.Warn("skipping invalid record",
			"key", key,
			"error", err,
		)
		return nil
	}

	err = h.replica.Append(r)
	if errors.Is(err, store.ErrDuplicateKey) {
		h.logger.Info("record already replicated", "key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("append %q: %w", key, err)
	}

	h.logger.Info("record replicated",
		"key", key,
		"replicaSize", h.replica.Len(),
	)
	return nil
}

func (h *Handler) modify(key string, image map[string]events.DynamoDBAttributeValue) error {
	r, err := h.replica.Lookup(key)
	if errors.Is(err, store.ErrNotFound) {
		// Missed the insert; the new image carries the full record.
		return h.insert(key, image)
	}
	if err != nil {
		return err
	}

	scores := getNumberListAttr(image, "scores")
	if len(scores) != r.Components() {
		h.logger.Warn("score count mismatch",
			"key", key,
			"replica", r.Components(),
			"image", len(scores),
		)
		return nil
	}
	for i, v := range scores {
		if err := r.SetScore(i, v); err != nil {
			return fmt.Errorf("set score %d of %q: %w", i, key, err)
		}
	}

	h.logger.Info("scores replicated",
		"key", key,
		"version", getNumberAttr(image, "version"),
	)
	return nil
}

// recordFromImage rebuilds a record from a stream image.
func recordFromImage(key string, image map[string]events.DynamoDBAttributeValue) (*store.Record, error) {
	if k := getStringAttr(image, "key"); k != key {
		return nil, fmt.Errorf("key attribute %q does not match sort key %q", k, key)
	}
	scores := getNumberListAttr(image, "scores")
	return store.NewRecordN(
		key,
		getStringAttr(image, "name"),
		getStringAttr(image, "branch"),
		store.Level(getNumberAttr(image, "level")),
		len(scores),
		scores,
	)
}
