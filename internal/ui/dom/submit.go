package dom

import (
	"context"
	"log/slog"
)

// Submitter sends the current input.
type Submitter interface {
	Submit(ctx context.Context) error
}

// SubmitHandler returns a handler for OnSubmit. It submits on a new goroutine
// so the browser event loop is not blocked, and logs a failed submit.
func SubmitHandler(ctx context.Context, s Submitter, logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}
	return func() {
		go func() {
			if err := s.Submit(ctx); err != nil {
				logger.Warn("submit failed", "error", err)
			}
		}()
	}
}
