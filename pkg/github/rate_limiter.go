package github

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateBudget tracks the rate limit GitHub reported on the most recent response
type RateBudget struct {
	mu        sync.RWMutex
	known     bool
	limit     int
	remaining int
	reset     time.Time
}

// RateBudgetStats is a snapshot of a RateBudget
type RateBudgetStats struct {
	Known     bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// update reads the X-RateLimit-* headers. Responses without them are ignored.
func (b *RateBudget) update(h http.Header) {
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	limit, _ := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	reset, _ := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.known = true
	b.limit = limit
	b.remaining = remaining
	b.reset = time.Unix(reset, 0)
}

// Stats returns the current snapshot
func (b *RateBudget) Stats() RateBudgetStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return RateBudgetStats{
		Known:     b.known,
		Limit:     b.limit,
		Remaining: b.remaining,
		Reset:     b.reset,
	}
}

// Reserve reports a rate_limit error when fewer than need requests are left
// before the reset time. An unknown budget always passes.
func (b *RateBudget) Reserve(need int, now time.Time) error {
	stats := b.Stats()
	if !stats.Known || stats.Remaining >= need || !now.Before(stats.Reset) {
		return nil
	}

	return &RemoteRequestError{
		Type: ErrorTypeRateLimit,
		Message: fmt.Sprintf("only %d of the %d requests needed are left, resets at %s",
			stats.Remaining, need, stats.Reset.Format(time.RFC3339)),
	}
}

// rateTransport feeds every response's rate limit headers into a RateBudget
type rateTransport struct {
	base   http.RoundTripper
	budget *RateBudget
}

func (t *rateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.budget.update(resp.Header)
	}
	return resp, err
}

// withRateBudget returns a copy of base whose transport records into budget
func withRateBudget(base *http.Client, budget *RateBudget) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}

	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	wrapped := *base
	wrapped.Transport = &rateTransport{base: transport, budget: budget}
	return &wrapped
}
