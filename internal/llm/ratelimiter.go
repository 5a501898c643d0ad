package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles completions to a backend. The Groq and
// DashScope free tiers enforce per-minute request quotas; exceeding them
// yields 429s that would surface as failed answers, so pacing happens here
// before the request leaves the process.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider wraps provider so at most rpm completions per
// minute reach it, allowing bursts up to the full minute's quota.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

// Complete blocks until the limiter grants a slot. When the wait cannot
// finish within the context deadline it fails without calling the backend.
func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}
