package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/stretchr/testify/require"
)

// fakeSource считает обращения к источнику.
type fakeSource struct {
	channels map[string]models.Channel
	err      error
	calls    int
}

func (f *fakeSource) ChannelByID(_ context.Context, id string) (*models.Channel, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.channels[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func newDirectory(t *testing.T, src ChannelSource) (*ChannelDirectory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewChannelDirectory(rdb, src, time.Minute), mr
}

func TestIsActive_CacheAside(t *testing.T) {
	src := &fakeSource{channels: map[string]models.Channel{
		"chat":   {ID: "chat", Status: 200},
		"closed": {ID: "closed", Status: -1},
	}}
	d, mr := newDirectory(t, src)
	ctx := context.Background()

	ok, err := d.IsActive(ctx, "chat")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, src.calls)

	// Повтор обслуживается кэшем.
	ok, err = d.IsActive(ctx, "chat")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, src.calls)
	require.True(t, mr.Exists(channelKeyPrefix+"chat"))

	ok, err = d.IsActive(ctx, "closed")
	require.NoError(t, err)
	require.False(t, ok)

	// Неизвестный канал кэшируется как неактивный.
	ok, err = d.IsActive(ctx, "nope")
	require.NoError(t, err)
	require.False(t, ok)
	v, _ := mr.Get(channelKeyPrefix + "nope")
	require.Equal(t, "0", v)

	// TTL истёк — снова идём в источник.
	mr.FastForward(2 * time.Minute)
	_, err = d.IsActive(ctx, "chat")
	require.NoError(t, err)
	require.Equal(t, 4, src.calls)
}

// Недоступный Redis не ломает ответ.
func TestIsActive_RedisDownFallsBack(t *testing.T) {
	src := &fakeSource{channels: map[string]models.Channel{"chat": {ID: "chat", Status: 200}}}
	d, mr := newDirectory(t, src)
	mr.Close()

	ok, err := d.IsActive(context.Background(), "chat")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsActive_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	d := NewChannelDirectory(nil, src, time.Minute)

	_, err := d.IsActive(context.Background(), "chat")
	require.Error(t, err)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	require.Error(t, err)

}
