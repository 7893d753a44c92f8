package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/stockme-dashboard/internal/ports"
	"github.com/dreamteam/stockme-dashboard/internal/testutil"
)

func TestStore_Lifecycle(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return now })
	ctx := context.Background()

	sess := testutil.NewSession().WithID("s1").ExpiringAt(now.Add(time.Hour)).Build()
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestStore_ExpiryEvicts(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testutil.NewSession().WithID("s1").ExpiringAt(now.Add(time.Minute)).Build()))
	now = now.Add(time.Minute)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestStore_RejectsInvalid(t *testing.T) {
	store := New()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, testutil.NewSession().WithID("").Build()))
	assert.Error(t, store.Save(ctx, testutil.NewSession().ExpiringAt(time.Now().Add(-time.Second)).Build()))
	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			_ = store.Save(ctx, testutil.NewSession().WithID(id).Build())
			_, _ = store.Get(ctx, id)
			_ = store.Delete(ctx, id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, store.Len())
}
