// Package services – ArchiveService
//
// This file implements ArchiveService, the component that passively archives
// group messages per user. Each archive is a sorted set scored by send time;
// the message text itself is the member, so resending identical text updates
// the existing entry's score instead of appending a duplicate. The read path
// is part of the store contract but is not wired to any user-facing command.
package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/domain"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/observability"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/repo"
)

// ArchiveService records and lists a user's archived group messages over the
// injected store handle.
type ArchiveService struct {
	RDB redis.Cmdable
}

// RecordMessage upserts text into the sender's archive scored by sentAt
// (epoch seconds, floating point). A resend of identical text keeps one
// entry and moves its score to the latest send: last-write-wins on recency.
// Returns false only on store failure.
func (s *ArchiveService) RecordMessage(ctx context.Context, userID int64, text string, sentAt time.Time) bool {
	tr := otel.Tracer("services/ArchiveService")
	ctx, span := tr.Start(ctx, "RecordMessage",
		trace.WithAttributes(attribute.Int64("archive.user_id", userID)),
	)
	defer span.End()

	start := time.Now()
	err := repo.AddMessage(ctx, s.RDB, userID, text, domain.TimeToScore(sentAt))
	observability.ObserveStoreOp("zadd_message", start, err)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("archive message")
		return false
	}
	return true
}

// ListMessagesDesc returns up to limit archived messages for the user, newest
// first. limit is clamped to >= 1; entries whose score does not convert back
// to a timestamp are logged and omitted. A store failure yields an empty
// slice, never an error.
func (s *ArchiveService) ListMessagesDesc(ctx context.Context, userID int64, limit int) []domain.MessageEntry {
	tr := otel.Tracer("services/ArchiveService")
	ctx, span := tr.Start(ctx, "ListMessagesDesc",
		trace.WithAttributes(
			attribute.Int64("archive.user_id", userID),
			attribute.Int("archive.limit", limit),
		),
	)
	defer span.End()

	if limit < 1 {
		limit = 1
	}

	start := time.Now()
	zs, err := repo.MessagesDesc(ctx, s.RDB, userID, int64(limit))
	observability.ObserveStoreOp("zrevrange_messages", start, err)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("list archived messages")
		return []domain.MessageEntry{}
	}

	entries := make([]domain.MessageEntry, 0, len(zs))
	for _, z := range zs {
		text, ok := z.Member.(string)
		if !ok {
			log.Warn().Int64("user_id", userID).Msg("skipping non-string archive member")
			continue
		}
		sentAt, ok := domain.ScoreToTime(z.Score)
		if !ok {
			log.Warn().
				Int64("user_id", userID).
				Float64("score", z.Score).
				Msg("skipping archive entry with unconvertible score")
			continue
		}
		entries = append(entries, domain.MessageEntry{Text: text, SentAt: sentAt})
	}
	return entries
}
