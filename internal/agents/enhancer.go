package agents

import (
	"context"

	"go.uber.org/zap"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/agents/prompts"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/provider"
)

// Enhancer expands a terse user prompt into a detailed design brief using
// the configured fallback chain.
type Enhancer struct {
	chain *provider.Fallback
	log   *zap.Logger
}

func NewEnhancer(log *zap.Logger, chain *provider.Fallback) *Enhancer {
	return &Enhancer{chain: chain, log: log}
}

// Enhance returns the expanded specification and the tag of the provider
// that produced it. Enhancement is advisory: if the whole chain fails the
// original prompt is returned unchanged with TagNone, and the failure is
// only logged. This is the single place in the pipeline where a total
// fallback failure is swallowed.
func (e *Enhancer) Enhance(ctx context.Context, prompt string) (string, provider.Tag) {
	enhanced, tag, err := e.chain.Execute(ctx, prompts.EnhancePrompt(prompt), prompts.EnhanceSystem)
	if err != nil {
		e.log.Warn("prompt enhancement failed, using original prompt", zap.Error(err))
		return prompt, provider.TagNone
	}
	if enhanced == "" {
		return prompt, provider.TagNone
	}
	return enhanced, tag
}
