package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/provider"
)

func TestEnhanceSuccess(t *testing.T) {
	log := zaptest.NewLogger(t)
	client := &stubProvider{tag: provider.TagLocal, reply: "a rich, detailed brief"}
	e := NewEnhancer(log, provider.NewFallback(log, client))

	enhanced, tag := e.Enhance(context.Background(), "cafe website")

	assert.Equal(t, "a rich, detailed brief", enhanced)
	assert.Equal(t, provider.TagLocal, tag)
	assert.Contains(t, client.lastPrompt, "cafe website")
}

func TestEnhanceDegradesToOriginalOnExhaustion(t *testing.T) {
	log := zaptest.NewLogger(t)
	client := &stubProvider{tag: provider.TagLocal, err: provider.ErrUnavailable}
	e := NewEnhancer(log, provider.NewFallback(log, client))

	enhanced, tag := e.Enhance(context.Background(), "cafe website")

	assert.Equal(t, "cafe website", enhanced)
	assert.Equal(t, provider.TagNone, tag)
}

func TestEnhanceDegradesOnEmptyReply(t *testing.T) {
	log := zaptest.NewLogger(t)
	client := &stubProvider{tag: provider.TagLocal, reply: ""}
	e := NewEnhancer(log, provider.NewFallback(log, client))

	enhanced, tag := e.Enhance(context.Background(), "cafe website")

	assert.Equal(t, "cafe website", enhanced)
	assert.Equal(t, provider.TagNone, tag)
}
