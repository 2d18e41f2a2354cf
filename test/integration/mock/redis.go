package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// NewRedis returns a client for a miniredis server shared by the whole test
// binary. The server lives until the process exits.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisClient = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisClient
}

// ClearRedis drops all keys. Pub/sub subscriptions survive.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
