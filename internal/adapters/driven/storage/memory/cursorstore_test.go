package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

func TestCursorStore_GetMissing(t *testing.T) {
	store := NewCursorStore()

	_, err := store.Get(context.Background(), domain.CursorKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCursorStore_SetOverwrites(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.CursorKey, "c1"))
	require.NoError(t, store.Set(ctx, domain.CursorKey, "c2"))

	token, err := store.Get(ctx, domain.CursorKey)
	require.NoError(t, err)
	assert.Equal(t, "c2", token)
}

func TestOverlayCursorStore_ReadsThroughWritesLocally(t *testing.T) {
	ctx := context.Background()
	base := NewCursorStore()
	require.NoError(t, base.Set(ctx, domain.CursorKey, "stored"))
	overlay := NewOverlayCursorStore(base)

	token, err := overlay.Get(ctx, domain.CursorKey)
	require.NoError(t, err)
	assert.Equal(t, "stored", token)
	assert.False(t, overlay.Changed(domain.CursorKey))

	require.NoError(t, overlay.Set(ctx, domain.CursorKey, "advanced"))

	token, err = overlay.Get(ctx, domain.CursorKey)
	require.NoError(t, err)
	assert.Equal(t, "advanced", token)
	assert.True(t, overlay.Changed(domain.CursorKey))

	token, err = base.Get(ctx, domain.CursorKey)
	require.NoError(t, err)
	assert.Equal(t, "stored", token)
}

func TestOverlayCursorStore_MissingInBoth(t *testing.T) {
	overlay := NewOverlayCursorStore(NewCursorStore())

	_, err := overlay.Get(context.Background(), "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
