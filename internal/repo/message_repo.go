// Package repo implements the data persistence layer for domain entities,
// backed by Redis. This file provides repository functions for the per-user
// message archive.
package repo

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/keys"
)

// AddMessage upserts text into the user's archive with the given score
// (send time as epoch seconds). When the identical text is already a member,
// ZADD updates its score in place: the archive deduplicates by text and keeps
// the most recent send time. Entries are never removed by this system.
func AddMessage(ctx context.Context, rdb redis.Cmdable, userID int64, text string, score float64) error {
	return rdb.ZAdd(ctx, keys.MessageArchive(userID), redis.Z{
		Score:  score,
		Member: text,
	}).Err()
}

// MessagesDesc returns up to limit members of the user's archive in
// descending score order (newest first), each paired with its score.
// limit must be >= 1; a larger limit costs a proportionally larger reply.
func MessagesDesc(ctx context.Context, rdb redis.Cmdable, userID int64, limit int64) ([]redis.Z, error) {
	return rdb.ZRevRangeWithScores(ctx, keys.MessageArchive(userID), 0, limit-1).Result()
}
