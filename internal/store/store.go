// Package store provides durable persistence of generated projects.
package store

import (
	"context"
	"errors"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

var (
	// ErrProjectNotFound is returned by Load for an unknown identifier.
	ErrProjectNotFound = errors.New("project not found")
	// ErrPersistence wraps any storage failure other than a missing project.
	ErrPersistence = errors.New("project persistence failed")
)

// ProjectStore owns the durable representation of projects. Save is
// idempotent and atomic: re-saving an identifier replaces the previous
// content completely, and a reader never observes a half-written project.
// Implementations return copies; callers never hold references into the
// store's internal state.
type ProjectStore interface {
	Save(ctx context.Context, projectID string, artifacts types.Artifacts, meta types.Metadata) error
	Load(ctx context.Context, projectID string) (types.Artifacts, types.Metadata, error)
	List(ctx context.Context) ([]types.ProjectSummary, error)
}
