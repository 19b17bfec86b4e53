package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/45061/Hotelregistryapp/internal/metrics"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Thin wrapper over sony/gobreaker (Closed → Open → Half-Open) guarding the
// SMTP relay. State changes are logged and exported as the
// hotel_circuit_breaker_state gauge.

// ErrCircuitOpen is returned when Execute is called while the breaker is open
// or still probing.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds tunable parameters.
type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold uint32        // consecutive failures to trip open (default: 3)
	MaxRequests      uint32        // probes allowed while half-open (default: 1)
	OpenTimeout      time.Duration // how long to stay open before probing (default: 60s)
}

// DefaultCBConfig returns the defaults used for the mail relay.
func DefaultCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 3,
		MaxRequests:      1,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// NewCircuitBreaker creates a breaker in Closed state. m may be nil.
func NewCircuitBreaker(cfg CircuitBreakerConfig, m *metrics.Metrics) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
			m.SetCircuitBreakerState(name, int(to))
		},
	}
	m.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings), name: cfg.Name}
}

// Execute runs fn through the breaker. Returns ErrCircuitOpen without calling
// fn while the breaker is open.
func (b *CircuitBreaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
	}
	return err
}

// State returns "closed", "open" or "half-open" for health endpoints.
func (b *CircuitBreaker) State() string {
	return b.cb.State().String()
}

func (b *CircuitBreaker) Name() string { return b.name }

// ── Guarded mailer ────────────────────────────────────────────────────────────

type reporteSender interface {
	SendReporte(ctx context.Context, to, subject, htmlBody, filename string, pdf []byte) error
}

// BreakerMailer sends reports through a CircuitBreaker.
type BreakerMailer struct {
	next    reporteSender
	breaker *CircuitBreaker
}

func NewBreakerMailer(next reporteSender, breaker *CircuitBreaker) *BreakerMailer {
	return &BreakerMailer{next: next, breaker: breaker}
}

func (m *BreakerMailer) SendReporte(ctx context.Context, to, subject, htmlBody, filename string, pdf []byte) error {
	return m.breaker.Execute(func() error {
		return m.next.SendReporte(ctx, to, subject, htmlBody, filename, pdf)
	})
}
