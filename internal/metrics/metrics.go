// Package metrics exposes Prometheus counters for the generation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderAttempts counts individual provider invocations by outcome.
	ProviderAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcp_provider_attempts_total",
		Help: "Provider invocations partitioned by provider tag and outcome.",
	}, []string{"provider", "outcome"})

	// ChainExhaustions counts requests where every provider failed.
	ChainExhaustions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcp_fallback_exhaustions_total",
		Help: "Requests for which the whole fallback chain failed.",
	})

	// Generations counts generate workflow completions by result.
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcp_generations_total",
		Help: "Generate workflow completions partitioned by result.",
	}, []string{"result"})

	// ChatTurns counts chat workflow completions by result.
	ChatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcp_chat_turns_total",
		Help: "Chat workflow completions partitioned by result.",
	}, []string{"result"})
)
