package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"storefx/internal/adapters"
	"storefx/internal/domain"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testChange() domain.RateChange {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return domain.RateChange{
		Old: domain.ExchangeRate{
			ID: uuid.New(), BCVRate: decimal.NewFromInt(36), BlackMarketRate: decimal.NewFromInt(55),
			IsActive: true, UpdatedAt: at.Add(-time.Hour),
		},
		New: domain.ExchangeRate{
			ID: uuid.New(), BCVRate: decimal.NewFromInt(38), BlackMarketRate: decimal.NewFromInt(58),
			IsActive: true, UpdatedAt: at,
		},
		DetectedAt: at.Add(time.Second),
	}
}

// --- Fanout / Func ---

func TestFanout_CallsEveryNotifierInOrder(t *testing.T) {
	var got []string
	f := Fanout{
		Func(func(domain.RateChange) { got = append(got, "first") }),
		LogNotifier{},
		Func(func(domain.RateChange) { got = append(got, "second") }),
	}
	var _ adapters.ChangeNotifier = f

	f.NotifyRateChanged(testChange())

	require.Equal(t, []string{"first", "second"}, got)
}

func TestFanout_Empty(t *testing.T) {
	require.NotPanics(t, func() { Fanout{}.NotifyRateChanged(testChange()) })
}

// --- Hub ---

func TestHub_BroadcastsToAllSubscribers(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	defer cancelA()
	b, cancelB := h.Subscribe()
	defer cancelB()
	require.Equal(t, 2, h.Subscribers())

	change := testChange()
	h.NotifyRateChanged(change)

	require.Equal(t, change, <-a)
	require.Equal(t, change, <-b)
}

func TestHub_Unsubscribe_ClosesChannelOnce(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	require.False(t, open)
	require.Zero(t, h.Subscribers())

	// no panic sending after unsubscribe
	h.NotifyRateChanged(testChange())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	slow, cancelSlow := h.Subscribe()
	defer cancelSlow()
	fast, cancelFast := h.Subscribe()
	defer cancelFast()

	done := make(chan struct{})
	received := 0
	go func() {
		defer close(done)
		for range fast {
			received++
		}
	}()

	for i := 0; i < subscriberBuffer*3; i++ {
		h.NotifyRateChanged(testChange())
	}
	require.Len(t, slow, subscriberBuffer)

	cancelFast()
	<-done
	require.Positive(t, received)
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()

	h.Close()
	h.Close()
	cancel()

	_, open := <-ch
	require.False(t, open)

	late, _ := h.Subscribe()
	_, open = <-late
	require.False(t, open)
}

func TestHub_ConcurrentSubscribeAndNotify(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancel := h.Subscribe()
			cancel()
		}()
		go func() {
			defer wg.Done()
			h.NotifyRateChanged(testChange())
		}()
	}
	wg.Wait()
	require.Zero(t, h.Subscribers())
}

// --- Kafka ---

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaNotifier_PublishesEvent(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaNotifier{writer: w}
	change := testChange()

	k.NotifyRateChanged(change)

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Equal(t, "38|58", string(msg.Key))
	require.True(t, msg.Time.Equal(change.DetectedAt))

	var event RateChangedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	require.Equal(t, rateChangedEvent, event.Type)
	require.Equal(t, "36", event.OldBCVRate)
	require.Equal(t, "55", event.OldBlackMarket)
	require.Equal(t, "38", event.NewBCVRate)
	require.Equal(t, "58", event.NewBlackMarket)
	require.Equal(t, change.New.ID.String(), event.RateID)
	_, err := uuid.Parse(event.EventID)
	require.NoError(t, err)
}

func TestKafkaNotifier_WriteErrorIsSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	k := &KafkaNotifier{writer: w}

	require.NotPanics(t, func() { k.NotifyRateChanged(testChange()) })
	require.NoError(t, k.Close())
	require.True(t, w.closed)
}

func TestNewKafkaNotifier_ConfiguresAsyncWriter(t *testing.T) {
	k := NewKafkaNotifier([]string{"localhost:9092"}, "storefx.rates")

	w, ok := k.writer.(*kafka.Writer)
	require.True(t, ok)
	require.True(t, w.Async)
	require.Equal(t, "storefx.rates", w.Topic)
	require.NoError(t, k.Close())
}
