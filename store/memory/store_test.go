package memory

import (
	"context"
	"testing"

	"github.com/cyp0633/librecur/datetime"
	"github.com/cyp0633/librecur/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRule() *recurrence.Rule {
	r := recurrence.NewRule(datetime.New(2009, 1, 5, 10, 0, 0))
	r.SetKind(recurrence.Weekly)
	r.SetWeekdayMask(1 << 1)
	return r
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	store := New()

	uid := store.Put(ctx, "", testRule())
	assert.NotEmpty(t, uid, "an empty UID gets a generated one")

	got, err := store.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, recurrence.Weekly, got.Kind())

	t.Run("explicit uid", func(t *testing.T) {
		assert.Equal(t, "standup", store.Put(ctx, "standup", testRule()))
	})

	t.Run("unknown uid", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := New()

	rule := testRule()
	uid := store.Put(ctx, "", rule)
	rule.SetInterval(9)

	got, err := store.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Interval(), "the store keeps its own clone")

	got.SetInterval(5)
	again, err := store.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Interval(), "returned rules are clones too")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	uid := store.Put(ctx, "gone", testRule())
	require.NoError(t, store.Delete(ctx, uid))
	assert.ErrorIs(t, store.Delete(ctx, uid), ErrNotFound)

	_, err := store.Get(ctx, uid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	store := New()
	assert.Empty(t, store.List(ctx))

	store.Put(ctx, "b", testRule())
	store.Put(ctx, "a", testRule())
	store.Put(ctx, "c", testRule())
	assert.Equal(t, []string{"a", "b", "c"}, store.List(ctx))
}
