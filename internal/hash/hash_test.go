package hash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/workerpool"
)

func newHasher(t *testing.T, cost int) *Hasher {
	t.Helper()
	pool := workerpool.New(2, 4)
	t.Cleanup(pool.Close)
	return NewHasher(pool, cost)
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := newHasher(t, bcrypt.MinCost)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", digest)

	ok, err := h.Verify(ctx, "Passw0rd", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "wrong", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_InvalidCost(t *testing.T) {
	h := newHasher(t, bcrypt.MaxCost+1)

	_, err := h.Hash(context.Background(), "Passw0rd")
	require.ErrorIs(t, err, apperr.ErrHashingFailure)
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := newHasher(t, bcrypt.MinCost)

	ok, err := h.Verify(context.Background(), "Passw0rd", "not-a-bcrypt-digest")
	require.ErrorIs(t, err, apperr.ErrHashingFailure)
	assert.False(t, ok)
}

func TestHasher_ClosedPool(t *testing.T) {
	pool := workerpool.New(1, 1)
	pool.Close()
	h := NewHasher(pool, bcrypt.MinCost)

	_, err := h.Hash(context.Background(), "Passw0rd")
	require.ErrorIs(t, err, apperr.ErrWorkerUnavailable)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
