// Package circuitbreaker guards calls to flaky external dependencies,
// currently the SMTP relay. After enough consecutive failures the
// breaker opens and callers fail fast until the cool-off passes.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without invoking the call while the breaker is
// open.
var ErrOpen = errors.New("circuit breaker is open")

const (
	stateClosed   = "closed"
	stateOpen     = "open"
	stateHalfOpen = "half-open"
)

type Settings struct {
	Name string
	// MaxFailures consecutive failures trip the breaker.
	MaxFailures int
	// Cooloff is how long the breaker stays open before a probe call is
	// let through.
	Cooloff time.Duration
}

type CircuitBreaker struct {
	name        string
	maxFailures int
	cooloff     time.Duration

	mu          sync.Mutex
	state       string
	failures    int
	lastFailure time.Time
}

func New(settings Settings) *CircuitBreaker {
	if settings.MaxFailures <= 0 {
		settings.MaxFailures = 3
	}
	if settings.Cooloff <= 0 {
		settings.Cooloff = 30 * time.Second
	}
	return &CircuitBreaker{
		name:        settings.Name,
		maxFailures: settings.MaxFailures,
		cooloff:     settings.Cooloff,
		state:       stateClosed,
	}
}

// Execute runs fn unless the breaker is open. The first call after the
// cool-off probes the dependency; its outcome closes or re-opens the
// breaker.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == stateOpen {
		if time.Since(cb.lastFailure) < cb.cooloff {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = stateHalfOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.state == stateHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = stateOpen
		}
		return err
	}

	cb.state = stateClosed
	cb.failures = 0
	return nil
}

// State reports the current breaker state for logging.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
