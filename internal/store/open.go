package store

import (
	"fmt"

	"storefront/internal/redisclient"
)

// DriverRedis stores records as plain Redis keys
const DriverRedis = "redis"

// ClosableBackend is a Backend owning a connection
type ClosableBackend interface {
	Backend
	Close() error
}

// RedisOptions configures the redis driver
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// OpenBackend opens the record backend named by driver. dsn is ignored for
// redis.
func OpenBackend(driver, dsn string, redisOpts RedisOptions) (ClosableBackend, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
		return NewStore(driver, dsn)
	case DriverRedis:
		return redisclient.NewClient(redisOpts.Addr, redisOpts.Password, redisOpts.DB)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
