package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow means the caller supplied malformed window parameters.
	// Handlers map it to 400; it is never retried.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrSourceUnavailable means the record source could not be queried
	// (timeout, connection loss). Handlers map it to 503; callers may retry.
	// It is never converted into zero-valued output.
	ErrSourceUnavailable = errors.New("record source unavailable")
)

// sourceErr tags a store-level failure with the metric and window it was
// computed for so the caller can log and diagnose without the engine logging.
func sourceErr(metric string, w *TimeWindow, err error) error {
	if w != nil {
		return fmt.Errorf("%w: metric %q, window %s %s..%s: %v",
			ErrSourceUnavailable, metric, w.Granularity,
			w.Start.Format("2006-01-02T15:04:05Z07:00"),
			w.End.Format("2006-01-02T15:04:05Z07:00"), err)
	}
	return fmt.Errorf("%w: metric %q: %v", ErrSourceUnavailable, metric, err)
}
