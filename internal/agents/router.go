package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/agents/prompts"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/provider"
	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

// taskPlanSchema is the strict shape a routing reply must satisfy. Unknown
// top-level keys are rejected; the asset arrays are optional and coerced to
// empty after decoding.
const taskPlanSchema = `{
  "type": "object",
  "required": ["code_task"],
  "additionalProperties": false,
  "properties": {
    "code_task": {"type": "string", "minLength": 1},
    "images": {"type": "array", "items": {"$ref": "#/definitions/asset"}},
    "videos": {"type": "array", "items": {"$ref": "#/definitions/asset"}},
    "audio": {"type": "array", "items": {"$ref": "#/definitions/asset"}}
  },
  "definitions": {
    "asset": {
      "type": "object",
      "required": ["filename", "description"],
      "additionalProperties": false,
      "properties": {
        "filename": {"type": "string"},
        "description": {"type": "string"}
      }
    }
  }
}`

// RouteResult is the tagged outcome of a routing call. When Parsed is
// false the plan is empty-but-valid and Raw holds the unparsable model
// reply; callers must check Parsed because an empty plan with the flag
// cleared genuinely means "nothing to do".
type RouteResult struct {
	Plan         types.TaskPlan
	Parsed       bool
	Raw          string
	ProviderUsed provider.Tag
}

// Router decomposes one website specification into a validated multi-agent
// task plan.
type Router struct {
	chain  *provider.Fallback
	schema *gojsonschema.Schema
	log    *zap.Logger
}

func NewRouter(log *zap.Logger, chain *provider.Fallback) (*Router, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(taskPlanSchema))
	if err != nil {
		return nil, fmt.Errorf("compile task plan schema: %w", err)
	}
	return &Router{chain: chain, schema: schema, log: log}, nil
}

// Route runs one fallback call and validates the reply against the task
// plan schema. Provider exhaustion is surfaced to the caller; a malformed
// reply is recovered locally into an empty plan with Parsed cleared.
func (r *Router) Route(ctx context.Context, specification string) (RouteResult, error) {
	raw, tag, err := r.chain.Execute(ctx, specification, prompts.RouterSystem)
	if err != nil {
		return RouteResult{}, err
	}

	result := RouteResult{ProviderUsed: tag}
	cleaned := stripCodeFence(raw)

	validation, err := r.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil || !validation.Valid() {
		r.log.Warn("routing reply failed schema validation, returning empty plan",
			zap.String("provider", string(tag)),
			zap.Error(err),
			zap.Any("violations", validationErrors(validation)),
		)
		result.Raw = raw
		result.Plan.Normalize()
		return result, nil
	}

	if err := json.Unmarshal([]byte(cleaned), &result.Plan); err != nil {
		// Valid against the schema but undecodable should not happen; treat
		// it like any other malformed reply.
		r.log.Warn("routing reply decode failed after validation", zap.Error(err))
		result.Plan = types.TaskPlan{}
		result.Raw = raw
		result.Plan.Normalize()
		return result, nil
	}

	result.Plan.Normalize()
	result.Parsed = true
	return result, nil
}

func validationErrors(res *gojsonschema.Result) []string {
	if res == nil {
		return nil
	}
	out := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		out = append(out, e.String())
	}
	return out
}
