package hash

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/workerpool"
)

// Runner is the part of workerpool.Pool the hasher needs.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Hasher runs bcrypt on a worker pool so request goroutines never burn CPU
// on it.
type Hasher struct {
	pool Runner
	cost int
}

func NewHasher(pool Runner, cost int) *Hasher {
	return &Hasher{pool: pool, cost: cost}
}

func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	var (
		digest []byte
		err    error
	)
	if perr := h.pool.Do(ctx, func() {
		digest, err = bcrypt.GenerateFromPassword([]byte(password), h.cost)
	}); perr != nil {
		return "", poolErr(perr)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrHashingFailure, err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A mismatch is not an error.
func (h *Hasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	var err error
	if perr := h.pool.Do(ctx, func() {
		err = bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	}); perr != nil {
		return false, poolErr(perr)
	}
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", apperr.ErrHashingFailure, err)
	}
}

func poolErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, workerpool.ErrUnavailable) {
		return fmt.Errorf("%w: %w", apperr.ErrWorkerUnavailable, err)
	}
	return err
}
