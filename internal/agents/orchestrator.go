package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/agents/prompts"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/metrics"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/provider"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/store"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

// GenerateRequest is one website generation request.
type GenerateRequest struct {
	Prompt        string
	ProjectID     string
	EnhancePrompt bool
	IncludeImages bool
	SingleFile    bool
}

// GenerateResult is the outcome of the generate workflow. The workflow
// never fails with an error value: every path terminates in a result with
// an explicit Success flag.
type GenerateResult struct {
	Success        bool
	ProjectID      string
	Artifacts      types.Artifacts
	EnhancedPrompt string
	ProviderUsed   provider.Tag
	Error          string
	// Warning reports a best-effort step that failed without downgrading
	// Success, currently only persistence.
	Warning string
}

// ChatRequest is one iterative modification request against the caller's
// current artifacts.
type ChatRequest struct {
	ProjectID string
	Message   string
	Current   types.Artifacts
	History   []types.ChatTurn
}

// ChatResult carries the merged artifacts plus the full assistant reply.
type ChatResult struct {
	Success           bool
	ProjectID         string
	Artifacts         types.Artifacts
	AssistantResponse string
	ProviderUsed      provider.Tag
	Error             string
}

// Orchestrator composes the enhancer, the code generation chain, the
// extractor and the project store into the generate and chat workflows.
// It owns all in-flight request state; nothing is shared between
// concurrent calls.
type Orchestrator struct {
	enhancer *Enhancer
	chain    *provider.Fallback
	store    store.ProjectStore
	log      *zap.Logger
}

func NewOrchestrator(log *zap.Logger, enhancer *Enhancer, chain *provider.Fallback, projects store.ProjectStore) *Orchestrator {
	return &Orchestrator{
		enhancer: enhancer,
		chain:    chain,
		store:    projects,
		log:      log,
	}
}

// NewProjectID mints a short random project identifier.
func NewProjectID() string {
	return "project_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// Generate runs the full pipeline: enhance, generate, extract, persist.
func (o *Orchestrator) Generate(ctx context.Context, req GenerateRequest) GenerateResult {
	if strings.TrimSpace(req.Prompt) == "" {
		return GenerateResult{Success: false, Error: "prompt must not be empty", ProviderUsed: provider.TagNone}
	}

	projectID := req.ProjectID
	if projectID == "" {
		projectID = NewProjectID()
	}

	// Enhancement is advisory and proceeds to generation whatever happens.
	specification := req.Prompt
	enhancedPrompt := ""
	if req.EnhancePrompt {
		specification, _ = o.enhancer.Enhance(ctx, req.Prompt)
		enhancedPrompt = specification
	}

	raw, tag, err := o.chain.Execute(ctx, prompts.CodePrompt(specification, req.SingleFile), prompts.CodeSystem)
	if err != nil {
		o.log.Error("code generation failed",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		metrics.Generations.WithLabelValues("failure").Inc()
		return GenerateResult{
			Success:        false,
			ProjectID:      projectID,
			EnhancedPrompt: enhancedPrompt,
			ProviderUsed:   provider.TagNone,
			Error:          err.Error(),
		}
	}

	artifacts := Extract(raw)
	if artifacts.HTML == "" {
		// The provider answered; never return a successful result with all
		// artifacts empty.
		artifacts.HTML = strings.TrimSpace(raw)
	}
	if artifacts.Empty() {
		// A blank reply that slipped past the provider layer is still a
		// failed generation.
		o.log.Error("provider returned an empty response", zap.String("project_id", projectID))
		metrics.Generations.WithLabelValues("failure").Inc()
		return GenerateResult{
			Success:        false,
			ProjectID:      projectID,
			EnhancedPrompt: enhancedPrompt,
			ProviderUsed:   provider.TagNone,
			Error:          "provider returned an empty response",
		}
	}

	result := GenerateResult{
		Success:        true,
		ProjectID:      projectID,
		Artifacts:      artifacts,
		EnhancedPrompt: enhancedPrompt,
		ProviderUsed:   tag,
	}

	meta := types.Metadata{
		ProjectID:      projectID,
		OriginalPrompt: req.Prompt,
		EnhancedPrompt: enhancedPrompt,
		CreatedAt:      time.Now().UTC(),
		ProviderUsed:   string(tag),
	}
	if err := o.store.Save(ctx, projectID, artifacts, meta); err != nil {
		// The artifacts were produced; storage is best-effort from the
		// caller's perspective.
		o.log.Error("project persistence failed",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		result.Warning = fmt.Sprintf("generated but not persisted: %v", err)
	}

	metrics.Generations.WithLabelValues("success").Inc()
	return result
}

// Chat performs one single-shot modification turn. Each artifact kind is
// replaced only when the model reply contains a non-empty block of that
// kind; otherwise the caller's current value is kept. The chat workflow
// never persists anything by itself.
func (o *Orchestrator) Chat(ctx context.Context, req ChatRequest) ChatResult {
	if strings.TrimSpace(req.Message) == "" {
		return ChatResult{Success: false, ProjectID: req.ProjectID, Error: "message must not be empty", ProviderUsed: provider.TagNone}
	}

	raw, tag, err := o.chain.Execute(ctx, prompts.ChatContext(req.Current, req.Message), prompts.ChatSystem)
	if err != nil {
		o.log.Error("chat modification failed",
			zap.String("project_id", req.ProjectID),
			zap.Error(err),
		)
		metrics.ChatTurns.WithLabelValues("failure").Inc()
		return ChatResult{
			Success:      false,
			ProjectID:    req.ProjectID,
			ProviderUsed: provider.TagNone,
			Error:        err.Error(),
		}
	}

	extracted := Extract(raw)
	merged := req.Current
	if extracted.HTML != "" {
		merged.HTML = extracted.HTML
	}
	if extracted.CSS != "" {
		merged.CSS = extracted.CSS
	}
	if extracted.JS != "" {
		merged.JS = extracted.JS
	}

	metrics.ChatTurns.WithLabelValues("success").Inc()
	return ChatResult{
		Success:           true,
		ProjectID:         req.ProjectID,
		Artifacts:         merged,
		AssistantResponse: raw,
		ProviderUsed:      tag,
	}
}
