package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// One live voice session per user across all instances. The value is the
// session id currently holding the slot; a TTL keeps crashed sessions from
// leaking the slot forever.
const (
	activeSessionPrefix = "voice:session:"
	activeSessionTTL    = 10 * time.Minute
)

type IRedis interface {
	SetActiveSession(ctx context.Context, userID string, sessionID string) error
	GetActiveSession(ctx context.Context, userID string) (string, error)
	RefreshActiveSession(ctx context.Context, userID string) error
	DeleteActiveSession(ctx context.Context, userID string, sessionID string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func sessionKey(userID string) string {
	return activeSessionPrefix + userID
}

func (r *redisClient) SetActiveSession(ctx context.Context, userID string, sessionID string) error {
	err := r.client.Set(ctx, sessionKey(userID), sessionID, activeSessionTTL).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error registering session for user %s: %v", userID, err))
		return err
	}
	return nil
}

// GetActiveSession returns the session id holding the user's slot, or empty
// when no session is registered.
func (r *redisClient) GetActiveSession(ctx context.Context, userID string) (string, error) {
	val, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading session for user %s: %v", userID, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) RefreshActiveSession(ctx context.Context, userID string) error {
	return r.client.Expire(ctx, sessionKey(userID), activeSessionTTL).Err()
}

// DeleteActiveSession releases the slot only if this session still owns it,
// so a replaced session tearing down cannot evict its replacement.
func (r *redisClient) DeleteActiveSession(ctx context.Context, userID string, sessionID string) error {
	current, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	} else if err != nil {
		return err
	}
	if current != sessionID {
		return nil
	}
	return r.client.Del(ctx, sessionKey(userID)).Err()
}
