package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// WaitReady polls the health endpoint until it answers 2xx or maxWait
// elapses. Auth failures stop the wait immediately.
func WaitReady(ctx context.Context, c *HTTPClient, maxWait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxWait

	op := func() error {
		resp, err := c.Get(ctx, "health", nil)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return backoff.Permanent(resp.Err())
		}
		return resp.Err()
	}
	notify := func(err error, next time.Duration) {
		log.Debug().Err(err).Dur("retry_in", next).Msg("api not ready")
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}
