package task

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/s0up4200/restvc/hypermedia"
	"github.com/s0up4200/restvc/transport"
)

// Polling defaults: the Nth poll waits N-1 steps, and the cumulative
// delay never exceeds the budget.
const (
	DefaultStep   = time.Second
	DefaultBudget = 60 * time.Second
)

// errStillRunning marks a poll that found the task not yet terminal.
var errStillRunning = errors.New("task still running")

// Client is the subset of the transport client the poller needs.
type Client interface {
	Do(ctx context.Context, method, uri string, body any) (*transport.Response, error)
}

// Option tunes the polling schedule.
type Option func(*settings)

type settings struct {
	step   time.Duration
	budget time.Duration
}

// WithStep sets the increment between successive poll delays.
func WithStep(step time.Duration) Option {
	return func(s *settings) {
		if step > 0 {
			s.step = step
		}
	}
}

// WithBudget sets the cumulative wall-clock polling budget.
func WithBudget(budget time.Duration) Option {
	return func(s *settings) {
		if budget > 0 {
			s.budget = budget
		}
	}
}

// Await resolves the response of an asynchronous submission. A 204 submit
// is an immediate synthetic success with no polling. Otherwise the task
// handle is decoded and polled until it finishes, fails, or the budget
// runs out. On success the task's Related link is fetched and returned as
// T; a task without a Related link resolves to the zero value of T, since
// there is no generic way to synthesize the produced entity.
func Await[T any](ctx context.Context, c Client, submitted *transport.Response, opts ...Option) (T, error) {
	var zero T
	if submitted == nil {
		return zero, fmt.Errorf("nil submit response")
	}
	if submitted.Status == http.StatusNoContent {
		return zero, nil
	}

	var t Task
	if err := submitted.Decode(&t); err != nil {
		return zero, fmt.Errorf("failed to decode task handle: %w", err)
	}

	// The API's link taxonomy reuses the "Delete" relation as the task
	// status URI. Polling it is a plain GET; nothing is deleted here.
	statusURI, err := t.Links.Require(hypermedia.RelDelete)
	if err != nil {
		return zero, err
	}

	cfg := settings{step: DefaultStep, budget: DefaultBudget}
	for _, opt := range opts {
		opt(&cfg)
	}

	poll := func() error {
		resp, err := c.Do(ctx, http.MethodGet, statusURI, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		t = Task{}
		if err := resp.Decode(&t); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode task %s: %w", statusURI, err))
		}
		switch {
		case t.Failed():
			return backoff.Permanent(&FailedError{Reason: t.Reason()})
		case t.State == StateFinished:
			return nil
		default:
			return errStillRunning
		}
	}

	b := backoff.WithContext(&incrementalBackOff{step: cfg.step, budget: cfg.budget}, ctx)
	if err := backoff.Retry(poll, b); err != nil {
		if errors.Is(err, errStillRunning) {
			return zero, &TimeoutError{URI: statusURI}
		}
		return zero, err
	}

	relatedURI, ok, err := t.Links.Find(hypermedia.RelRelated)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, nil
	}

	resp, err := c.Do(ctx, http.MethodGet, relatedURI, nil)
	if err != nil {
		return zero, err
	}
	var out T
	if err := resp.Decode(&out); err != nil {
		return zero, fmt.Errorf("failed to decode entity from %s: %w", relatedURI, err)
	}
	return out, nil
}

// incrementalBackOff yields step, 2*step, 3*step, ... and stops once the
// cumulative delay would exceed the budget. The first poll happens
// immediately, so the Nth poll has waited N-1 steps in total increments.
type incrementalBackOff struct {
	step    time.Duration
	budget  time.Duration
	next    time.Duration
	elapsed time.Duration
}

func (b *incrementalBackOff) NextBackOff() time.Duration {
	b.next += b.step
	b.elapsed += b.next
	if b.elapsed > b.budget {
		return backoff.Stop
	}
	return b.next
}

func (b *incrementalBackOff) Reset() {
	b.next = 0
	b.elapsed = 0
}
