package contentbox

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the context is done before the search
	// completes. The returned error also wraps the context's own error.
	ErrCancelled = errors.New("content box search cancelled")

	// ErrMalformedInput is returned for a missing or zero-size image or an
	// unusable transform.
	ErrMalformedInput = errors.New("malformed content box input")
)

// checkCancelled returns a wrapped ErrCancelled once ctx is done.
func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
