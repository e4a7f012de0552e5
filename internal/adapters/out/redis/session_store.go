// Package redis keeps conversation sessions in Redis so they survive
// restarts and are shared between replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tracker/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "tracker:session:"

// Config holds the connection settings of the Redis server.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SessionStore implements ports.SessionStore with one JSON value per chat.
// Every Save refreshes the TTL.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionStore(client *goredis.Client, ttl time.Duration, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		client: client,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "redis-sessions")),
	}
}

func (s *SessionStore) Get(ctx context.Context, chatID int64) (ports.Session, error) {
	raw, err := s.client.Get(ctx, key(chatID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ports.Session{}, nil
	}
	if err != nil {
		return ports.Session{}, fmt.Errorf("get session %d: %w", chatID, err)
	}

	var sess ports.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn("dropping unreadable session", zap.Int64("chat_id", chatID), zap.Error(err))
		_ = s.client.Del(ctx, key(chatID)).Err()
		return ports.Session{}, nil
	}
	return sess, nil
}

// Save stores sess; an idle session is deleted instead.
func (s *SessionStore) Save(ctx context.Context, chatID int64, sess ports.Session) error {
	if sess.Mode == "" && len(sess.Buffer) == 0 {
		return s.Clear(ctx, chatID)
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %d: %w", chatID, err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key(chatID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set session %d: %w", chatID, err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, key(chatID)).Err(); err != nil {
		return fmt.Errorf("delete session %d: %w", chatID, err)
	}
	return nil
}

func key(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}
