package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// Change event actions.
const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishChange publishes a catalog mutation to the event stream.
// Publishing is best-effort: a nil writer or a broker failure never fails
// the originating operation.
func publishChange(ctx context.Context, writer KafkaWriter, entity string, entityID int64, action string) {
	if writer == nil {
		return
	}

	event := models.ChangeEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal change event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish change event", "event_id", event.EventID, "error", err)
		return
	}
	logger.Log.Infow("change event published", "event_id", event.EventID, "entity", entity, "entity_id", entityID, "action", action)
}
