package events

import (
	"errors"
	"log/slog"
	"time"
)

// retryBase is the first backoff delay; each retry doubles it.
const retryBase = 10 * time.Millisecond

// PublishWithRetry sends event, retrying a full queue up to maxRetries
// attempts with doubling delays (10ms, 20ms, 40ms, ...). A closed client
// fails at once. A nil client is skipped so editors without a transport need
// no special casing. The error of the last attempt is returned.
func PublishWithRetry(client EventPublisher, event Event, maxRetries int) error {
	if client == nil {
		return nil
	}

	var err error
	delay := retryBase
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = client.SendEvent(event); err == nil {
			if attempt > 1 {
				slog.Debug("transaction published after retry",
					"attempt", attempt, "doc_id", event.DocID, "label", event.Label)
			}
			return nil
		}
		if errors.Is(err, ErrClosed) || attempt == maxRetries {
			break
		}
		slog.Debug("transaction queue full, retrying",
			"attempt", attempt, "retry_delay", delay, "error", err)
		time.Sleep(delay)
		delay *= 2
	}

	slog.Warn("transaction not delivered to peers",
		"doc_id", event.DocID, "label", event.Label, "error", err)
	return err
}
