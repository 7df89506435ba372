package metrics

import (
	"context"
	"errors"
	e "fullauth/internal/core/domain/errors"
	ratelimiter "fullauth/internal/core/domain/rate_limiter"
	"fullauth/internal/core/services"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK          = "ok"
	OutcomeRateLimited = "rate_limited"
	OutcomeCanceled    = "canceled"
	OutcomeError       = "error"
)

// ServiceRuns counts service runs by service name and outcome.
type ServiceRuns struct {
	counter *prometheus.CounterVec
}

func NewServiceRuns(registerer prometheus.Registerer) *ServiceRuns {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fullauth_service_runs_total",
			Help: "Total number of service runs by outcome",
		},
		[]string{"service", "outcome"},
	)
	registerer.MustRegister(counter)
	return &ServiceRuns{counter: counter}
}

func (m *ServiceRuns) observe(service string, err error) {
	m.counter.WithLabelValues(service, Outcome(err)).Inc()
}

// Outcome is "ok" for a nil error, the snake-cased error kind for domain
// failures and "error" for anything else.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		return OutcomeRateLimited
	}
	if errors.Is(err, context.Canceled) {
		return OutcomeCanceled
	}
	if kind := e.KindOf(err); kind != "" {
		return strings.ReplaceAll(string(kind), " ", "_")
	}
	return OutcomeError
}

type serviceWithMetrics[T any, S any] struct {
	metrics *ServiceRuns
	name    string
	inner   services.Service[T, S]
}

func WithMetrics[T any, S any](
	metrics *ServiceRuns,
	name string,
	inner services.Service[T, S],
) services.Service[T, S] {
	if metrics == nil {
		panic(e.NewNilArgumentError("metrics"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithMetrics[T, S]{metrics: metrics, name: name, inner: inner}
}

func (s *serviceWithMetrics[T, S]) Run(ctx context.Context, input T) (S, error) {
	result, err := s.inner.Run(ctx, input)
	s.metrics.observe(s.name, err)
	return result, err
}
