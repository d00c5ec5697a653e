package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"dublinbikes/station-service/config"
	"dublinbikes/station-service/internal/errs"
	"dublinbikes/station-service/internal/metrics"
)

const maxBodyBytes = 8 << 20

// upstream performs single-attempt GET calls behind a circuit breaker. Calls
// are never retried; an open breaker fails fast without touching the network.
type upstream struct {
	name    string
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

func newUpstream(name string, conf *config.Config, client *http.Client) *upstream {
	if client == nil {
		client = &http.Client{Timeout: conf.UpstreamTimeout}
	}

	failureLimit := conf.BreakerFailureLimit
	if failureLimit == 0 {
		failureLimit = 1
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: conf.BreakerMaxRequests,
		Interval:    conf.BreakerInterval,
		Timeout:     conf.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureLimit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})

	return &upstream{
		name:    name,
		client:  client,
		timeout: conf.UpstreamTimeout,
		breaker: breaker,
	}
}

// get returns the body of a 2xx reply. Every failure is a fetch error.
func (u *upstream) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	start := time.Now()
	result, err := u.breaker.Execute(func() (interface{}, error) {
		return u.do(ctx, endpoint, query)
	})
	metrics.UpstreamDuration.WithLabelValues(u.name).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.UpstreamCallsTotal.WithLabelValues(u.name, "breaker_open").Inc()
			return nil, errs.With(errs.Fetch(err, fmt.Sprintf("%s circuit breaker open", u.name)), "provider", u.name)
		}

		metrics.UpstreamCallsTotal.WithLabelValues(u.name, "error").Inc()
		log.Warn().Err(err).Str("provider", u.name).Msg("Upstream call failed")
		if !errs.IsFetch(err) {
			err = errs.Fetch(err, fmt.Sprintf("%s request failed", u.name))
		}
		return nil, errs.With(err, "provider", u.name)
	}

	metrics.UpstreamCallsTotal.WithLabelValues(u.name, "success").Inc()
	return result.([]byte), nil
}

func (u *upstream) do(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return nil, errs.Fetch(err, fmt.Sprintf("invalid %s endpoint", u.name))
	}
	values := target.Query()
	for key, vals := range query {
		for _, val := range vals {
			values.Add(key, val)
		}
	}
	target.RawQuery = values.Encode()

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, errs.Fetch(err, fmt.Sprintf("build %s request", u.name))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		// The transport error carries the full URL, which includes the API key.
		return nil, errs.Fetch(nil, fmt.Sprintf("%s request failed: %s", u.name, transportReason(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errs.With(errs.Fetchf("%s returned status code: %d", u.name, resp.StatusCode), "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Fetch(err, fmt.Sprintf("read %s response", u.name))
	}
	return body, nil
}

func transportReason(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "timeout"
		}
		return urlErr.Err.Error()
	}
	return err.Error()
}
