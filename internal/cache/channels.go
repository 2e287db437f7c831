package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/storage"
	"github.com/pribylovaa/go-social-platform/pkg/log"
	"github.com/redis/go-redis/v9"
)

const channelKeyPrefix = "posts:channel:active:"

// ChannelSource — источник истины о каналах.
type ChannelSource interface {
	ChannelByID(ctx context.Context, id string) (*models.Channel, error)
}

// ChannelDirectory отвечает, активен ли канал. Ответ кэшируется в Redis на ttl;
// недоступность Redis деградирует до прямого чтения источника.
type ChannelDirectory struct {
	rdb *redis.Client
	src ChannelSource
	ttl time.Duration
}

// NewChannelDirectory — rdb может быть nil (кэш выключен).
func NewChannelDirectory(rdb *redis.Client, src ChannelSource, ttl time.Duration) *ChannelDirectory {
	return &ChannelDirectory{rdb: rdb, src: src, ttl: ttl}
}

// IsActive — канал существует и открыт для публикаций.
func (d *ChannelDirectory) IsActive(ctx context.Context, channelID string) (bool, error) {
	const op = "cache/channels/IsActive"

	key := channelKeyPrefix + channelID
	lg := log.From(ctx).With("op", op, "channel_id", channelID)

	if d.rdb != nil {
		v, err := d.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			return v == "1", nil
		case errors.Is(err, redis.Nil):
		default:
			lg.Warn("redis get failed, falling back to store", "err", err)
		}
	}

	active := false
	ch, err := d.src.ChannelByID(ctx, channelID)
	switch {
	case err == nil:
		active = ch.IsActive()
	case errors.Is(err, storage.ErrNotFound):
	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if d.rdb != nil {
		v := "0"
		if active {
			v = "1"
		}
		if err := d.rdb.Set(ctx, key, v, d.ttl).Err(); err != nil {
			lg.Warn("redis set failed", "err", err)
		}
	}

	return active, nil
}
