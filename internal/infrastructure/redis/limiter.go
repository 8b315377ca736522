package redis

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiterStore store de ulule/limiter sobre Redis, compartido entre réplicas.
func NewLimiterStore(rdb goredis.UniversalClient) (limiter.Store, error) {
	return sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: "pecas:limiter",
	})
}
