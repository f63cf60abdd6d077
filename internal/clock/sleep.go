package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or until ctx is done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return Wait(ctx, d, nil)
}

// Wait blocks for d, until ctx is done, or until wake delivers a value, whichever
// comes first. A nil wake channel never fires. Only ctx ending is an error.
func Wait(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return nil
	case <-timer.C:
		return nil
	}
}
