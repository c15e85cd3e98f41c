package notify

import (
	"context"
	"encoding/json"
	"storefx/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const rateChangedEvent = "exchange_rate.changed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type RateChangedEvent struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	OldBCVRate     string    `json:"old_bcv_rate"`
	OldBlackMarket string    `json:"old_black_market_rate"`
	NewBCVRate     string    `json:"new_bcv_rate"`
	NewBlackMarket string    `json:"new_black_market_rate"`
	RateID         string    `json:"rate_id"`
	RateUpdatedAt  time.Time `json:"rate_updated_at"`
	DetectedAt     time.Time `json:"detected_at"`
}

// KafkaNotifier publishes each change to a topic. The writer is async, so
// NotifyRateChanged only enqueues; delivery errors surface in the completion log.
type KafkaNotifier struct {
	writer messageWriter
}

func (k *KafkaNotifier) NotifyRateChanged(change domain.RateChange) {
	event := RateChangedEvent{
		EventID:        uuid.NewString(),
		Type:           rateChangedEvent,
		OldBCVRate:     change.Old.BCVRate.String(),
		OldBlackMarket: change.Old.BlackMarketRate.String(),
		NewBCVRate:     change.New.BCVRate.String(),
		NewBlackMarket: change.New.BlackMarketRate.String(),
		RateID:         change.New.ID.String(),
		RateUpdatedAt:  change.New.UpdatedAt,
		DetectedAt:     change.DetectedAt,
	}

	msg, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal rate change event")
		return
	}

	err = k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(change.New.Signature()),
		Value: msg,
		Time:  change.DetectedAt,
	})
	if err != nil {
		logrus.WithError(err).WithField("event_id", event.EventID).Warn("Failed to enqueue rate change event")
	}
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
			Async:    true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logrus.WithError(err).Errorf("Failed to publish %d rate change events", len(messages))
				}
			},
		},
	}
}
