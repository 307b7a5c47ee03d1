package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
)

func intp(v int) *int { return &v }

func TestCalculate_Defaults(t *testing.T) {
	t.Parallel()

	w, err := Calculate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Window{Page: 1, Size: 10, Offset: 0}, w)
}

func TestCalculate_Offset(t *testing.T) {
	t.Parallel()

	w, err := Calculate(intp(3), intp(7))
	require.NoError(t, err)
	assert.Equal(t, 14, w.Offset)
	assert.Equal(t, 7, w.Size)
}

func TestCalculate_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	_, err := Calculate(intp(0), nil)
	require.ErrorIs(t, err, apperr.ErrInvalidPage)

	_, err = Calculate(nil, intp(0))
	require.ErrorIs(t, err, apperr.ErrInvalidSize)

	_, err = Calculate(intp(-2), intp(5))
	require.ErrorIs(t, err, apperr.ErrInvalidPage)
}

func TestCalculate_OffsetOverflow(t *testing.T) {
	t.Parallel()

	_, err := Calculate(intp(2), intp(math.MaxInt))
	require.ErrorIs(t, err, apperr.ErrInvalidPage)

	_, err = Calculate(intp(1<<62+1), intp(4))
	require.ErrorIs(t, err, apperr.ErrInvalidPage)

	w, err := Calculate(intp(1), intp(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, 0, w.Offset)

	w, err = Calculate(intp(1<<61), intp(4))
	require.NoError(t, err)
	assert.Equal(t, (1<<61-1)*4, w.Offset)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(1), TotalPages(3, math.MaxInt))
	assert.Equal(t, int64(math.MaxInt64), TotalPages(math.MaxInt64, 1))
}

func TestParseOptionalInt(t *testing.T) {
	t.Parallel()

	v, err := ParseOptionalInt("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseOptionalInt("4")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 4, *v)

	_, err = ParseOptionalInt("four")
	require.Error(t, err)
}
