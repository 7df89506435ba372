package metrics

import (
	"context"
	"errors"
	"fmt"
	ratelimiter "fullauth/internal/core/domain/rate_limiter"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return input, nil
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		err      error
		expected string
	}{
		{err: nil, expected: OutcomeOK},
		{err: user.ErrUserDoesNotExist, expected: "not_found"},
		{err: token.ErrTokenExpired, expected: "expired"},
		{err: fmt.Errorf("send: %w", token.ErrTokenDoesNotExist), expected: "not_found"},
		{err: ratelimiter.ErrRateLimitExceeded, expected: OutcomeRateLimited},
		{err: context.Canceled, expected: OutcomeCanceled},
		{err: errors.New("boom"), expected: OutcomeError},
	}
	for _, testcase := range cases {
		t.Run(testcase.expected, func(t *testing.T) {
			require.Equal(t, testcase.expected, Outcome(testcase.err))
		})
	}
}

func TestWithMetricsCountsOutcomes(t *testing.T) {
	assert := require.New(t)
	runs := NewServiceRuns(prometheus.NewRegistry())
	inner := &stubService{}
	service := WithMetrics[string, string](runs, "request_reset", inner)

	result, err := service.Run(context.Background(), "a")
	assert.Nil(err)
	assert.Equal("a", result)

	inner.err = user.ErrUserDoesNotExist
	_, err = service.Run(context.Background(), "b")
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	_, err = service.Run(context.Background(), "c")
	assert.ErrorIs(err, user.ErrUserDoesNotExist)

	assert.Equal(1.0, testutil.ToFloat64(runs.counter.WithLabelValues("request_reset", OutcomeOK)))
	assert.Equal(2.0, testutil.ToFloat64(runs.counter.WithLabelValues("request_reset", "not_found")))
}

func TestWithMetricsPanicsOnNilArguments(t *testing.T) {
	runs := NewServiceRuns(prometheus.NewRegistry())
	require.Panics(t, func() { WithMetrics[string, string](nil, "x", &stubService{}) })
	require.Panics(t, func() { WithMetrics[string, string](runs, "x", nil) })
}
