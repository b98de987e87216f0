package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/foodtracker/internal/config"
	"github.com/mamadbah2/foodtracker/internal/repository/slot"
)

func TestSlotRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewSlotWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "tracker:")
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	_, err := s.Get(ctx, "foodCompanyState")
	assert.ErrorIs(t, err, slot.ErrNotFound)

	require.NoError(t, s.Set(ctx, "foodCompanyState", `{"orders":[]}`))

	value, err := s.Get(ctx, "foodCompanyState")
	require.NoError(t, err)
	assert.Equal(t, `{"orders":[]}`, value)

	raw, err := mr.Get("tracker:foodCompanyState")
	require.NoError(t, err)
	assert.Equal(t, `{"orders":[]}`, raw)
}

func TestNewSlotPings(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	s, err := NewSlot(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mr.Close()
	_, err = NewSlot(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestGetSurfacesConnectionErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewSlotWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "")
	t.Cleanup(func() { _ = s.Close() })
	mr.Close()

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, slot.ErrNotFound)
}
