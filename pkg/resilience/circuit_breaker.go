// Package resilience provides the circuit breaker and retry helpers used
// around outbound dependencies.
package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreakerConfig tunes when a breaker trips and recovers
type CircuitBreakerConfig struct {
	Name string
	// Requests allowed through while half-open
	MaxRequests uint32
	// Interval after which the closed-state counters reset (0 = never)
	Interval time.Duration
	// Time spent open before probing again
	Timeout time.Duration
	// Consecutive failures that trip the breaker outright
	FailureThreshold uint32
	// Failure ratio that trips once MinRequestsToTrip requests were seen
	FailureRatioThreshold float64
	MinRequestsToTrip     uint32
}

// DefaultCircuitBreakerConfig returns the defaults used service-wide
func DefaultCircuitBreakerConfig(name string) *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Name:                  name,
		MaxRequests:           3,
		Interval:              60 * time.Second,
		Timeout:               30 * time.Second,
		FailureThreshold:      5,
		FailureRatioThreshold: 0.5,
		MinRequestsToTrip:     10,
	}
}

// CircuitBreaker wraps gobreaker and logs state transitions
type CircuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	name   string
	logger *slog.Logger
}

// NewCircuitBreaker creates a breaker from the given config
func NewCircuitBreaker(config *CircuitBreakerConfig, logger *slog.Logger) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= config.FailureThreshold {
				return true
			}
			if counts.Requests < config.MinRequestsToTrip {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= config.FailureRatioThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &CircuitBreaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		name:   config.Name,
		logger: logger,
	}
}

// Execute runs fn through the breaker. Open-state rejections come back as a
// service unavailable error rather than the raw gobreaker sentinel.
func (c *CircuitBreaker) Execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)

	switch err {
	case gobreaker.ErrOpenState:
		c.logger.Warn("Circuit breaker is open", "name", c.name)
		return nil, fmt.Errorf("service unavailable: circuit breaker open for %s", c.name)
	case gobreaker.ErrTooManyRequests:
		c.logger.Warn("Circuit breaker rejected request in half-open state", "name", c.name)
		return nil, fmt.Errorf("service unavailable: too many requests for %s", c.name)
	}

	return result, err
}

// RetryConfig tunes the retry loop
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	// RetryableErrors decides whether an error is worth another attempt.
	// A nil predicate retries nothing.
	RetryableErrors func(error) bool
}

// DefaultRetryConfig returns three attempts with exponential backoff
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Retry runs fn until it succeeds, the error is non-retryable, the context
// is cancelled, or the attempts are exhausted.
func Retry(ctx context.Context, config *RetryConfig, fn func() error) error {
	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if config.RetryableErrors == nil || !config.RetryableErrors(lastErr) {
			return lastErr
		}
		if attempt == config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * config.BackoffFactor)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", config.MaxAttempts, lastErr)
}
