package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsync/bomcompare/internal/bom"
)

func testSession(filename string, createdAt time.Time) *bom.ComparisonSession {
	return &bom.ComparisonSession{
		ID:        uuid.New(),
		Master:    &bom.BOMDocument{Role: bom.RoleMaster, Filename: filename},
		Targets:   []bom.TargetComparisonResult{{Target: &bom.BOMDocument{Filename: "t.csv"}}},
		CreatedAt: createdAt,
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	session := testSession("master.csv", time.Now().UTC())

	id, err := store.Save(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, session.ID, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := testSession("older.csv", base)
	newer := testSession("newer.csv", base.Add(time.Hour))

	_, err := store.Save(ctx, older)
	require.NoError(t, err)
	_, err = store.Save(ctx, newer)
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer.csv", entries[0].MasterFilename)
	assert.Equal(t, "older.csv", entries[1].MasterFilename)
	assert.Equal(t, 1, entries[0].TargetCount)
}
