package support

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Redis backs the leadership lock for background jobs. The client is shared
// process-wide; request handlers never talk to redis directly.
var (
	redisMu     sync.Mutex
	redisClient *redis.Client
)

// GetRedisClient returns the shared client, dialing on first use. REDIS_URL
// takes the full redis:// form, credentials and database number included.
func GetRedisClient() (*redis.Client, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		return redisClient, nil
	}

	rawURL := GetEnv("REDIS_URL", "redis://localhost:6379")
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url %q: %w", rawURL, err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %q: %w", rawURL, err)
	}

	redisClient = client
	return redisClient, nil
}

// CloseRedisClient drops the shared client. The next GetRedisClient call
// dials again, so it is safe to use during shutdown or between tests.
func CloseRedisClient() error {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient == nil {
		return nil
	}

	err := redisClient.Close()
	redisClient = nil
	return err
}
