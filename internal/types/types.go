package types

import "time"

// Artifacts is the set of generated front-end outputs for a project.
// Fields are never nil-equivalent: an empty string means "not generated".
type Artifacts struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"javascript"`
}

// Empty reports whether no artifact was produced at all.
func (a Artifacts) Empty() bool {
	return a.HTML == "" && a.CSS == "" && a.JS == ""
}

// Metadata describes a persisted project.
type Metadata struct {
	ProjectID      string    `json:"project_id"`
	OriginalPrompt string    `json:"original_prompt"`
	EnhancedPrompt string    `json:"enhanced_prompt,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ProviderUsed   string    `json:"model_used"`
}

// ProjectSummary is the listing view of a project. The prompt is truncated
// to a bounded preview so listings stay small.
type ProjectSummary struct {
	ProjectID    string    `json:"project_id"`
	NamePreview  string    `json:"name_preview"`
	CreatedAt    time.Time `json:"created_at"`
	ProviderUsed string    `json:"model_used"`
}

// ChatTurn is one message of the refinement conversation history.
type ChatTurn struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TaskAsset is one media sub-task of a TaskPlan.
type TaskAsset struct {
	Filename    string `json:"filename"`
	Description string `json:"description"`
}

// TaskPlan is the decomposition of a website specification into tasks for
// the specialized generation agents. CodeTask must be non-empty for the
// plan to be considered valid; the asset slices may be empty but never nil.
type TaskPlan struct {
	CodeTask string      `json:"code_task"`
	Images   []TaskAsset `json:"images"`
	Videos   []TaskAsset `json:"videos"`
	Audio    []TaskAsset `json:"audio"`
}

// Normalize coerces nil asset slices to empty ones so callers and JSON
// encoders never observe null where an empty list is meant.
func (p *TaskPlan) Normalize() {
	if p.Images == nil {
		p.Images = []TaskAsset{}
	}
	if p.Videos == nil {
		p.Videos = []TaskAsset{}
	}
	if p.Audio == nil {
		p.Audio = []TaskAsset{}
	}
}
