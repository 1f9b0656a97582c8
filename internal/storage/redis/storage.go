package redis

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().DialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   newKeys(cfg.KeyPrefix),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Kind returns "redis"
func (s *Storage) Kind() string {
	return "redis"
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, player *model.RegisteredPlayer) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := s.keys.registration(player.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, s.keys.registrations(), string(player.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegistration(ctx context.Context, id model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, s.keys.registration(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.RegisteredPlayer
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]model.RegisteredPlayer, error) {
	ids, err := s.client.LRange(ctx, s.keys.registrations(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	result := []model.RegisteredPlayer{}
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.keys.registration(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry without a value; skip it
			continue
		}
		var player model.RegisteredPlayer
		if err := json.Unmarshal([]byte(str), &player); err != nil {
			return nil, err
		}
		result = append(result, player)
	}

	slices.SortStableFunc(result, func(a, b model.RegisteredPlayer) int {
		return a.RegisteredAt.Compare(b.RegisteredAt)
	})
	return result, nil
}

func (s *Storage) DeleteRegistration(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.keys.registration(id))
	pipe.LRem(ctx, s.keys.registrations(), 0, string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) ClearRegistrations(ctx context.Context) error {
	ids, err := s.client.LRange(ctx, s.keys.registrations(), 0, -1).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.keys.registration(model.PlayerID(id)))
	}
	keys = append(keys, s.keys.registrations())
	return s.client.Del(ctx, keys...).Err()
}

// Clan operations

func (s *Storage) SaveClan(ctx context.Context, clan *model.Clan) error {
	data, err := json.Marshal(clan)
	if err != nil {
		return err
	}

	key := s.keys.clan(clan.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, s.keys.clans(), string(clan.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListClans(ctx context.Context) ([]model.Clan, error) {
	ids, err := s.client.LRange(ctx, s.keys.clans(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	result := []model.Clan{}
	for _, id := range ids {
		data, err := s.client.Get(ctx, s.keys.clan(model.ClanID(id))).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var clan model.Clan
		if err := json.Unmarshal(data, &clan); err != nil {
			return nil, err
		}
		result = append(result, clan)
	}
	return result, nil
}

func (s *Storage) DeleteClan(ctx context.Context, id model.ClanID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.keys.clan(id))
	pipe.LRem(ctx, s.keys.clans(), 0, string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrClanNotFound
	}
	return nil
}

// Message operations

func (s *Storage) SaveMessage(ctx context.Context, msg *model.CwlMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.keys.messages(), data)
	if s.cfg.MaxMessages > 0 {
		pipe.LTrim(ctx, s.keys.messages(), 0, s.cfg.MaxMessages-1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListMessages(ctx context.Context, limit int) ([]model.CwlMessage, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, s.keys.messages(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	result := make([]model.CwlMessage, 0, len(values))
	for _, v := range values {
		var msg model.CwlMessage
		if err := json.Unmarshal([]byte(v), &msg); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, nil
}

// Clan configuration operations

func (s *Storage) GetClanConfiguration(ctx context.Context) (*model.ClanConfiguration, error) {
	data, err := s.client.Get(ctx, s.keys.clanConfiguration()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrConfigurationNotFound
		}
		return nil, err
	}

	var cfg model.ClanConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Storage) SaveClanConfiguration(ctx context.Context, cfg *model.ClanConfiguration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.keys.clanConfiguration(), data, 0).Err()
}
