package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(zaptest.NewLogger(t), rdb), mr
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	artifacts := types.Artifacts{
		HTML: "<html><body>hi</body></html>",
		CSS:  "body { margin: 0; }",
		JS:   "console.log('hi');",
	}
	meta := types.Metadata{
		ProjectID:      "project_ab12cd34",
		OriginalPrompt: "a cafe website",
		EnhancedPrompt: "a cozy cafe website with a menu section",
		CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ProviderUsed:   "local",
	}

	require.NoError(t, s.Save(ctx, "project_ab12cd34", artifacts, meta))

	gotArtifacts, gotMeta, err := s.Load(ctx, "project_ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, artifacts, gotArtifacts)
	assert.Equal(t, meta, gotMeta)
}

func TestLoadUnknownProject(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.Load(context.Background(), "project_missing1")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSaveOverwriteRemovesStaleFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	meta := types.Metadata{OriginalPrompt: "p", CreatedAt: time.Now().UTC()}

	full := types.Artifacts{HTML: "H", CSS: "S", JS: "J"}
	require.NoError(t, s.Save(ctx, "project_x", full, meta))

	// A later markup-only save must not leave the old style and script
	// behind.
	require.NoError(t, s.Save(ctx, "project_x", types.Artifacts{HTML: "H2"}, meta))

	got, _, err := s.Load(ctx, "project_x")
	require.NoError(t, err)
	assert.Equal(t, types.Artifacts{HTML: "H2", CSS: "", JS: ""}, got)
}

func TestSaveIsIdempotentInIndex(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	meta := types.Metadata{OriginalPrompt: "p", CreatedAt: time.Now().UTC()}

	require.NoError(t, s.Save(ctx, "project_x", types.Artifacts{HTML: "H"}, meta))
	require.NoError(t, s.Save(ctx, "project_x", types.Artifacts{HTML: "H"}, meta))

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestListOrdersNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"project_old00000", "project_mid00000", "project_new00000"} {
		meta := types.Metadata{
			ProjectID:      id,
			OriginalPrompt: "prompt for " + id,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
			ProviderUsed:   "local",
		}
		require.NoError(t, s.Save(ctx, id, types.Artifacts{HTML: "x"}, meta))
	}

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "project_new00000", summaries[0].ProjectID)
	assert.Equal(t, "project_mid00000", summaries[1].ProjectID)
	assert.Equal(t, "project_old00000", summaries[2].ProjectID)
	assert.Equal(t, "prompt for project_new00000", summaries[0].NamePreview)
	assert.Equal(t, "local", summaries[0].ProviderUsed)
}

func TestListTruncatesLongPrompts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	long := strings.Repeat("a", 200)
	meta := types.Metadata{OriginalPrompt: long, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Save(ctx, "project_x", types.Artifacts{HTML: "x"}, meta))

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, strings.Repeat("a", 80)+"...", summaries[0].NamePreview)
}

func TestListSkipsProjectsMissingFromIndex(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	meta := types.Metadata{OriginalPrompt: "p", CreatedAt: time.Now().UTC()}

	require.NoError(t, s.Save(ctx, "project_keep0000", types.Artifacts{HTML: "x"}, meta))
	require.NoError(t, s.Save(ctx, "project_gone0000", types.Artifacts{HTML: "x"}, meta))

	// The hash vanished but the index entry survived, e.g. a partial flush.
	mr.Del("project:project_gone0000")

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "project_keep0000", summaries[0].ProjectID)
}

func TestLoadPartialProject(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	meta := types.Metadata{OriginalPrompt: "p", CreatedAt: time.Now().UTC()}

	require.NoError(t, s.Save(ctx, "project_x", types.Artifacts{HTML: "only markup"}, meta))

	got, _, err := s.Load(ctx, "project_x")
	require.NoError(t, err)
	assert.Equal(t, "only markup", got.HTML)
	assert.Equal(t, "", got.CSS)
	assert.Equal(t, "", got.JS)
}
