package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

const (
	// previewRunes bounds the prompt preview returned by List.
	previewRunes = 80

	fieldHTML = "html"
	fieldCSS  = "css"
	fieldJS   = "javascript"
	fieldMeta = "meta"

	createdIndexKey = "projects:created"
)

// RedisStore keeps each project in one hash (three artifact fields plus a
// metadata JSON blob) and indexes identifiers in a sorted set scored by
// creation time. The whole save runs inside a MULTI/EXEC transaction, so
// concurrent saves to the same identifier serialize on the server and
// readers never see a partial project.
type RedisStore struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisStore(log *zap.Logger, rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, log: log}
}

func projectKey(id string) string { return "project:" + id }

// Save overwrites the project completely. Stale fields from a previous
// save are removed by deleting the hash inside the same transaction.
func (s *RedisStore) Save(ctx context.Context, projectID string, artifacts types.Artifacts, meta types.Metadata) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: encode metadata for %s: %w", ErrPersistence, projectID, err)
	}

	key := projectKey(projectID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]interface{}{
		fieldHTML: artifacts.HTML,
		fieldCSS:  artifacts.CSS,
		fieldJS:   artifacts.JS,
		fieldMeta: string(metaJSON),
	})
	pipe.ZAdd(ctx, createdIndexKey, redis.Z{
		Score:  float64(meta.CreatedAt.UnixNano()),
		Member: projectID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrPersistence, projectID, err)
	}

	s.log.Debug("project saved", zap.String("project_id", projectID))
	return nil
}

// Load returns the artifacts and metadata for one project. Missing
// artifact fields come back as empty strings, which supports partial
// projects such as markup-only saves.
func (s *RedisStore) Load(ctx context.Context, projectID string) (types.Artifacts, types.Metadata, error) {
	vals, err := s.rdb.HGetAll(ctx, projectKey(projectID)).Result()
	if err != nil {
		return types.Artifacts{}, types.Metadata{}, fmt.Errorf("%w: load %s: %w", ErrPersistence, projectID, err)
	}
	if len(vals) == 0 {
		return types.Artifacts{}, types.Metadata{}, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	artifacts := types.Artifacts{
		HTML: vals[fieldHTML],
		CSS:  vals[fieldCSS],
		JS:   vals[fieldJS],
	}

	var meta types.Metadata
	if raw, ok := vals[fieldMeta]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return types.Artifacts{}, types.Metadata{}, fmt.Errorf("%w: decode metadata for %s: %w", ErrPersistence, projectID, err)
		}
	}
	return artifacts, meta, nil
}

// List returns project summaries ordered by creation time descending.
// Projects whose hash has vanished from under the index are skipped.
func (s *RedisStore) List(ctx context.Context) ([]types.ProjectSummary, error) {
	ids, err := s.rdb.ZRevRange(ctx, createdIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %w", ErrPersistence, err)
	}

	summaries := make([]types.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		raw, err := s.rdb.HGet(ctx, projectKey(id), fieldMeta).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list metadata for %s: %w", ErrPersistence, id, err)
		}

		var meta types.Metadata
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			s.log.Warn("skipping project with undecodable metadata", zap.String("project_id", id), zap.Error(err))
			continue
		}

		summaries = append(summaries, types.ProjectSummary{
			ProjectID:    id,
			NamePreview:  truncatePreview(meta.OriginalPrompt),
			CreatedAt:    meta.CreatedAt,
			ProviderUsed: meta.ProviderUsed,
		})
	}
	return summaries, nil
}

func truncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + "..."
}
