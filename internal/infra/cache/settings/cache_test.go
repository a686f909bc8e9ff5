package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestCache_DisabledWithoutClient(t *testing.T) {
	c := NewCache(nil, 0)
	ctx := context.Background()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Set(ctx, domain.DefaultSettings()))
	assert.NoError(t, c.Invalidate(ctx))

	var nilCache *Cache
	_, err = nilCache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestEncodeDecode_PreservesSlotGrid(t *testing.T) {
	original := domain.DefaultSettings()
	original.AdminPhone = "+390000000"

	data, err := encode(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"09:30"`)

	decoded, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := decode([]byte("{not json"))
	assert.ErrorIs(t, err, ErrCache)
}
