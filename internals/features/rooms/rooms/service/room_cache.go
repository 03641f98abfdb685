package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
)

var ErrCacheMiss = errors.New("room cache miss")

// RoomCache keeps read-only room rows for the tenant portal.
type RoomCache interface {
	Get(ctx context.Context, roomID uuid.UUID) (*roomModel.RoomModel, error)
	Set(ctx context.Context, room *roomModel.RoomModel) error
	Invalidate(ctx context.Context, roomIDs ...uuid.UUID)
}

// Cache is the process-wide room cache; InitRoomCache swaps in redis.
var Cache RoomCache = NoopRoomCache{}

const roomCacheTTL = 10 * time.Minute

func roomKey(id uuid.UUID) string { return "rentrix:room:" + id.String() }

type RedisRoomCache struct {
	c   *redis.Client
	log *zap.Logger
}

func NewRedisRoomCache(c *redis.Client, log *zap.Logger) *RedisRoomCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisRoomCache{c: c, log: log}
}

func (r *RedisRoomCache) Get(ctx context.Context, roomID uuid.UUID) (*roomModel.RoomModel, error) {
	val, err := r.c.Get(ctx, roomKey(roomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var room roomModel.RoomModel
	if err := json.Unmarshal([]byte(val), &room); err != nil {
		return nil, ErrCacheMiss
	}
	return &room, nil
}

func (r *RedisRoomCache) Set(ctx context.Context, room *roomModel.RoomModel) error {
	b, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, roomKey(room.RoomID), b, roomCacheTTL).Err()
}

func (r *RedisRoomCache) Invalidate(ctx context.Context, roomIDs ...uuid.UUID) {
	if len(roomIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(roomIDs))
	for _, id := range roomIDs {
		keys = append(keys, roomKey(id))
	}
	if err := r.c.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("room cache invalidate failed", zap.Error(err), zap.Int("keys", len(keys)))
	}
}

type NoopRoomCache struct{}

func (NoopRoomCache) Get(context.Context, uuid.UUID) (*roomModel.RoomModel, error) {
	return nil, ErrCacheMiss
}
func (NoopRoomCache) Set(context.Context, *roomModel.RoomModel) error { return nil }
func (NoopRoomCache) Invalidate(context.Context, ...uuid.UUID)        {}

// InitRoomCache connects redis when addr is set; otherwise the noop cache stays.
func InitRoomCache(ctx context.Context, addr, password string, db int, log *zap.Logger) error {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}
	Cache = NewRedisRoomCache(client, log)
	return nil
}

// InvalidateRooms drops cached rows for the given rooms.
func InvalidateRooms(ctx context.Context, rooms []roomModel.RoomModel) {
	ids := make([]uuid.UUID, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.RoomID)
	}
	Cache.Invalidate(ctx, ids...)
}
