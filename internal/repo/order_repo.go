// Package repo implements the data persistence layer for domain entities,
// backed by Redis. This file provides repository functions for daily orders.
//
// All functions are context-aware and accept a redis.Cmdable handle, so they
// work against the process-wide client as well as against a pipeline or a
// test instance. They follow the "thin repository" approach: no business
// logic, only the store's native atomic primitives.
//
// Concurrency model: one day's orders live in a single hash keyed by the
// calendar date, one field per owner display name. HSET/HDEL are atomic at
// field granularity, which is all the coordination the design needs — two
// users write different fields and never conflict, and a rapid double-submit
// by the same user resolves to last-write-wins on one field, which is the
// intended idempotent-overwrite semantics.
package repo

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/keys"
)

// UpsertOrder writes payload as the owner's field in the day's order hash,
// unconditionally overwriting any previous value for that owner.
func UpsertOrder(ctx context.Context, rdb redis.Cmdable, dateStr, owner, payload string) error {
	return rdb.HSet(ctx, keys.Orders(dateStr), owner, payload).Err()
}

// OrdersForDay returns the raw owner -> payload map for one calendar date.
// An absent day key yields an empty map, not an error.
func OrdersForDay(ctx context.Context, rdb redis.Cmdable, dateStr string) (map[string]string, error) {
	return rdb.HGetAll(ctx, keys.Orders(dateStr)).Result()
}

// DeleteOrder removes the owner's field from the day's order hash. The result
// is tri-state: (true, nil) when a field was present and removed, (false, nil)
// when there was nothing to remove, and (false, err) on store failure.
func DeleteOrder(ctx context.Context, rdb redis.Cmdable, dateStr, owner string) (bool, error) {
	n, err := rdb.HDel(ctx, keys.Orders(dateStr), owner).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
