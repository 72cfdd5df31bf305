package xpa

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker guards calls on the persistent connection. Execute
// runs one driver call and propagates its reply count. The interface
// is satisfied by *gobreaker.CircuitBreaker[int].
type CircuitBreaker interface {
	Execute(fn func() (int, error)) (int, error)
	State() gobreaker.State
}

var _ CircuitBreaker = (*gobreaker.CircuitBreaker[int])(nil)

// NewCircuitBreakerConfig returns a factory creating the circuit
// breaker for a client's connection. This is a helper for common use
// cases; assign the result to Config.NewCircuitBreaker.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func() CircuitBreaker {
	return func() CircuitBreaker {
		settings := gobreaker.Settings{
			Name:        "xpa",
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[int](settings)
	}
}
