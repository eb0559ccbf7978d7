// Package delivery implements the delivery sink port over HTTP: a JSON-array
// POST with an acknowledgment for regular flushes, and a beacon-style
// fire-and-forget variant for teardown.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
	"github.com/xinran093/synthesisAI-V2/pkg/errors"
)

// Ack is the collection endpoint's acknowledgment body.
type Ack struct {
	Status         string `json:"status"`
	EventsReceived int    `json:"eventsReceived"`
}

// HTTPSink posts event batches to the collection endpoint.
type HTTPSink struct {
	url               string
	client            *http.Client
	logger            *zap.Logger
	bestEffortTimeout time.Duration
}

// NewHTTPSink creates a sink for the given endpoint URL.
func NewHTTPSink(url string, client *http.Client, logger *zap.Logger) *HTTPSink {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSink{
		url:               url,
		client:            client,
		logger:            logger,
		bestEffortTimeout: 5 * time.Second,
	}
}

// Deliver posts the batch and observes the acknowledgment. Any 2xx status is
// success; the sink imposes no timeout of its own and never retries.
func (s *HTTPSink) Deliver(ctx context.Context, events []entities.Event) error {
	body, err := json.Marshal(events)
	if err != nil {
		return errors.Wrap(err, "encoding event batch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building delivery request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.NewNetworkError("delivering event batch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewNetworkError(
			fmt.Sprintf("collection endpoint returned status %d", resp.StatusCode), nil)
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		// A 2xx with a malformed ack still counts as delivered.
		s.logger.Warn("unparseable delivery acknowledgment", zap.Error(err))
		return nil
	}
	if ack.EventsReceived != len(events) {
		s.logger.Warn("acknowledgment count mismatch",
			zap.Int("sent", len(events)),
			zap.Int("acknowledged", ack.EventsReceived),
		)
	}
	return nil
}

// DeliverBestEffort posts the batch on a detached goroutine with its own
// deadline and never observes the response. It tolerates the caller
// disappearing immediately after the call, which is exactly the teardown
// situation it exists for.
func (s *HTTPSink) DeliverBestEffort(events []entities.Event) {
	body, err := json.Marshal(events)
	if err != nil {
		s.logger.Warn("encoding teardown batch failed", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.bestEffortTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
}
