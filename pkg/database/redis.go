package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// redisPingTimeout bounds the startup check. A server that cannot answer a
// PING this fast is treated as down.
const redisPingTimeout = 5 * time.Second

// RedisConfig holds the connection settings for the code and rate-limit
// store. Zero fields fall back to local development values.
type RedisConfig struct {
	ServiceName  string // log tag
	Host         string
	Port         int
	Password     string // empty means no AUTH
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   time.Duration
}

func (c *RedisConfig) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *RedisConfig) options() *redis.Options {
	return &redis.Options{
		Addr:            c.addr(),
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdleConns,
		ConnMaxLifetime: c.MaxConnAge,
	}
}

// RedisClient is the handle the rest of the app passes around. It satisfies
// redis.Cmdable, so stores take it without knowing about this package.
type RedisClient struct {
	*redis.Client
}

// InitRedis fills in defaults, dials, and refuses to return a client that
// cannot answer a PING.
func InitRedis(config *RedisConfig) (*RedisClient, error) {
	if config == nil {
		return nil, fmt.Errorf("redis config is nil")
	}
	setRedisDefaults(config)

	client := redis.NewClient(config.options())
	if err := ping(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", config.addr(), err)
	}

	logrus.WithFields(logrus.Fields{
		"service": serviceName(config.ServiceName),
		"addr":    config.addr(),
		"db":      config.DB,
		"auth":    config.Password != "",
	}).Info("redis connected")
	return &RedisClient{Client: client}, nil
}

func ping(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

func setRedisDefaults(c *RedisConfig) {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6379
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 5
	}
	if c.MaxConnAge == 0 {
		c.MaxConnAge = time.Hour
	}
}
