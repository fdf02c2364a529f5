// Package repo implements the data persistence layer for domain entities,
// backed by Redis. This file contains client bootstrapping helpers.
//
// The bot keeps one process-wide client (a managed connection pool) that is
// created at startup, health-checked once, injected into the services, and
// closed on shutdown. The client's dial/read/write timeouts are the only
// timeout mechanism the persistence layer relies on: a stalled store call
// surfaces as an error instead of wedging an update handler.
package repo

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions carries the connection parameters for the store.
type RedisOptions struct {
	Host        string
	Port        int
	DB          int
	Password    string
	DialTimeout time.Duration
	OpTimeout   time.Duration // applied as read and write timeout
}

// NewRedisClient builds a go-redis client from the given options and verifies
// connectivity with a single PING. An unreachable store is returned as an
// error so the caller can refuse to start serving.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		DB:           opts.DB,
		Password:     opts.Password,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.OpTimeout,
		WriteTimeout: opts.OpTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
