package provider

import (
	"context"

	"go.uber.org/zap"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/metrics"
)

// Fallback executes an ordered chain of providers sequentially until one
// succeeds. Ordering is fixed at construction and identical for every call:
// no per-call randomization and no racing, so "which provider answered" is
// always meaningful and cloud calls are never double-billed.
type Fallback struct {
	chain []Client
	log   *zap.Logger
}

// NewFallback builds a policy over the given clients, attempted in the
// order listed. Nil clients are skipped so callers can pass conditionally
// constructed backends.
func NewFallback(log *zap.Logger, clients ...Client) *Fallback {
	chain := make([]Client, 0, len(clients))
	for _, c := range clients {
		if c != nil {
			chain = append(chain, c)
		}
	}
	return &Fallback{chain: chain, log: log}
}

// Providers exposes the configured chain order, mainly for status reporting.
func (f *Fallback) Providers() []Client {
	out := make([]Client, len(f.chain))
	copy(out, f.chain)
	return out
}

// Execute tries each provider in order and returns the first successful
// response together with the tag of the provider that produced it.
//
// Individual provider failures are logged and recovered here, never
// surfaced. If the chain is exhausted an ExhaustedError carrying the last
// cause is returned. If the caller's context is cancelled, iteration stops
// immediately and the remaining providers are not attempted.
func (f *Fallback) Execute(ctx context.Context, prompt, system string) (string, Tag, error) {
	if len(f.chain) == 0 {
		return "", TagNone, ErrNoProviderConfigured
	}

	var lastErr error
	for _, client := range f.chain {
		if err := ctx.Err(); err != nil {
			return "", TagNone, err
		}

		text, err := client.Invoke(ctx, prompt, system)
		if err == nil {
			metrics.ProviderAttempts.WithLabelValues(string(client.Tag()), "success").Inc()
			return text, client.Tag(), nil
		}
		if ctx.Err() != nil {
			// The in-flight call was cancelled; do not try the next provider.
			metrics.ProviderAttempts.WithLabelValues(string(client.Tag()), "cancelled").Inc()
			return "", TagNone, ctx.Err()
		}

		metrics.ProviderAttempts.WithLabelValues(string(client.Tag()), "failure").Inc()
		f.log.Warn("provider failed, advancing fallback chain",
			zap.String("provider", string(client.Tag())),
			zap.String("model", client.Model()),
			zap.Error(err),
		)
		lastErr = err
	}

	metrics.ChainExhaustions.Inc()
	return "", TagNone, &ExhaustedError{Attempts: len(f.chain), Last: lastErr}
}
