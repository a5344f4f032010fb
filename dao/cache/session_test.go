package cache

import (
	"NoteShare/pkg/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStorage(t *testing.T) {
	rds, mr := testutil.NewRedis(t)
	s := NewSessionStorage(rds)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Set(ctx, "abc", &Session{UserID: 3, Username: "alice"}, time.Minute))
	sess, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sess.UserID)
	assert.Equal(t, "alice", sess.Username)
	assert.False(t, sess.IsAdmin)

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, "abc")
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Set(ctx, "def", &Session{UserID: 4}, time.Minute))
	require.NoError(t, s.Del(ctx, "def"))
	_, err = s.Get(ctx, "def")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFacetStorage(t *testing.T) {
	rds, _ := testutil.NewRedis(t)
	f := NewFacetStorage(rds)
	ctx := context.Background()

	gen, err := f.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	_, ok := f.Get(ctx, gen, "subject")
	assert.False(t, ok)

	require.NoError(t, f.Set(ctx, gen, "subject", []string{"Math", "Physics"}, time.Minute))
	require.NoError(t, f.Set(ctx, gen, "course", []string{}, time.Minute))

	values, ok := f.Get(ctx, gen, "subject")
	require.True(t, ok)
	assert.Equal(t, []string{"Math", "Physics"}, values)

	values, ok = f.Get(ctx, gen, "course")
	require.True(t, ok)
	assert.Empty(t, values)

	require.NoError(t, f.Invalidate(ctx))
	next, err := f.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
	_, ok = f.Get(ctx, next, "subject")
	assert.False(t, ok)

	// 失效之后按旧代数写入，新代数读不到
	require.NoError(t, f.Set(ctx, gen, "subject", []string{"Stale"}, time.Minute))
	_, ok = f.Get(ctx, next, "subject")
	assert.False(t, ok)
}
