package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

// Gateway wraps backend calls in a bounded retry loop with exponential
// backoff. Not-found, conflict and validation errors propagate on the
// first attempt; everything else retries until the attempt budget runs out,
// and the last error is then returned wrapped with the operation label and
// the attempt count.
type Gateway struct {
	client   *Client
	attempts int
	base     time.Duration
	sleep    func(context.Context, time.Duration) error
	log      zerolog.Logger
}

func NewGateway(client *Client, attempts int, baseDelay time.Duration, log zerolog.Logger) *Gateway {
	if attempts < 1 {
		attempts = 1
	}
	return &Gateway{
		client:   client,
		attempts: attempts,
		base:     baseDelay,
		sleep:    sleepCtx,
		log:      log,
	}
}

// Client exposes the underlying typed client for operations composed by the
// caller inside Do.
func (g *Gateway) Client() *Client { return g.client }

// Do runs op with retries. The delay doubles after each failed attempt,
// starting from the configured base delay.
func (g *Gateway) Do(ctx context.Context, label string, op func(ctx context.Context) error) error {
	delay := g.base
	var last error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !errs.IsRetryable(err) {
			return err
		}
		last = err
		if attempt == g.attempts {
			break
		}
		g.log.Warn().
			Str("op", label).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Err(err).
			Msg("backend call failed, retrying")
		if serr := g.sleep(ctx, delay); serr != nil {
			return errs.Wrap(errs.KindTransient, label, serr)
		}
		delay *= 2
	}
	return &errs.Error{
		Kind: errs.KindOf(last),
		Op:   label,
		Msg:  fmt.Sprintf("failed after %d attempts", g.attempts),
		Err:  last,
	}
}

// Probe checks reachability with a minimal read against the doctors
// collection. It reports false rather than an error so callers can render
// a degraded-connectivity state.
func (g *Gateway) Probe(ctx context.Context) bool {
	err := g.Do(ctx, "backend.probe", func(ctx context.Context) error {
		var rows []struct {
			ID string `json:"id"`
		}
		return g.client.Select(ctx, "", "doctors", Query{Select: "id", Limit: 1}, &rows)
	})
	if err != nil {
		g.log.Error().Err(err).Msg("backend connectivity probe failed")
		return false
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
