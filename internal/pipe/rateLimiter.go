package pipe

import (
	"context"
	"time"
)

// RateLimit forwards items from input, letting at most ratePerSecond through.
// A non-positive rate disables throttling. The output channel is closed when
// the input drains or ctx is canceled.
func RateLimit[T any](ctx context.Context, input <-chan T, ratePerSecond int, bufferSize int) <-chan T {
	output := make(chan T, bufferSize)
	go func() {
		defer close(output)
		if ratePerSecond <= 0 {
			for item := range input {
				select {
				case output <- item:
				case <-ctx.Done():
					return
				}
			}
			return
		}
		ticker := time.NewTicker(time.Second / time.Duration(ratePerSecond))
		defer ticker.Stop()
		for item := range input {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
			select {
			case output <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return output
}
