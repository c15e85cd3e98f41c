package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	rateChangedEventName = "rate-changed"
	keepAliveInterval    = 25 * time.Second
	retryMillis          = 5000
)

type RateChangedEvent struct {
	Old        ExchangeRateResponse `json:"old"`
	New        ExchangeRateResponse `json:"new"`
	DetectedAt time.Time            `json:"detected_at"`
}

// StreamChanges godoc
// @Summary Exchange rate change feed
// @Description Server-sent events stream with one rate-changed event per detected change.
// @Tags Rates
// @Produce text/event-stream
// @Success 200 {object} RateChangedEvent
// @Router /exchange-rate/changes [get]
func (h *Handler) StreamChanges(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	changes, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case change, open := <-changes:
			if !open {
				return
			}
			payload, err := json.Marshal(RateChangedEvent{
				Old:        toRateResponse(change.Old),
				New:        toRateResponse(change.New),
				DetectedAt: change.DetectedAt,
			})
			if err != nil {
				logrus.WithError(err).Error("Failed to marshal rate change event")
				continue
			}
			if _, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", rateChangedEventName, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
