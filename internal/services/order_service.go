// Package services defines the business logic for daily food orders and the
// per-user message archive.
//
// This file implements OrderService, the component that owns the lifecycle of
// one user's order for one calendar day. The contract is deliberately small:
// an order is identified by (day, owner display name), placing again on the
// same day overwrites in place, and removal is explicit. The service trusts
// its caller to hand in trimmed, non-empty strings and a caller-clock
// timestamp; it never fails for business reasons, only when the store does.
//
// Observability: public methods are OpenTelemetry-instrumented; store
// failures and skipped records go to the operational log, never to the user.
package services

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/domain"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/keys"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/observability"
	"github.com/gdgvda/tech-pizza-delivery-waiter-bot/internal/repo"
)

// OrderService coordinates order persistence over the injected store handle.
//
// The handle is the process-wide client created at startup; the service holds
// no cached state across calls. Now supplies "today" for writes and defaults
// to time.Now, which keeps day derivation testable.
type OrderService struct {
	RDB redis.Cmdable
	Now func() time.Time
}

// today returns the current calendar date string in local time.
func (s *OrderService) today() string {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return keys.DateString(now())
}

// PlaceOrUpdateOrder durably upserts the caller's order for today,
// overwriting any previous order by the same owner on the same day. It
// returns false only when the store call fails; the write is visible to
// subsequent reads immediately.
//
// owner and food must be non-empty after trimming by the caller; placedAt is
// the caller's clock and is stored for display/sort only.
func (s *OrderService) PlaceOrUpdateOrder(ctx context.Context, owner, food string, placedAt time.Time) bool {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "PlaceOrUpdateOrder",
		trace.WithAttributes(attribute.String("order.owner", owner)),
	)
	defer span.End()

	dateStr := s.today()

	payload, err := domain.EncodeOrderPayload(food, placedAt)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("encode order payload")
		return false
	}

	start := time.Now()
	err = repo.UpsertOrder(ctx, s.RDB, dateStr, owner, payload)
	observability.ObserveStoreOp("hset_order", start, err)
	if err != nil {
		log.Error().Err(err).
			Str("owner", owner).
			Str("date", dateStr).
			Msg("store order")
		return false
	}

	log.Info().
		Str("owner", owner).
		Str("food", food).
		Str("date", dateStr).
		Msg("order stored")
	return true
}

// ListOrdersForDay returns every order stored for the given calendar date,
// sorted ascending by placement time; a record whose timestamp is absent
// sorts first, ties break on owner for determinism. Records whose payload
// does not decode are skipped and logged, and both an absent day and a store
// failure yield an empty slice rather than an error.
func (s *OrderService) ListOrdersForDay(ctx context.Context, dateStr string) []domain.OrderRecord {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "ListOrdersForDay",
		trace.WithAttributes(attribute.String("order.date", dateStr)),
	)
	defer span.End()

	start := time.Now()
	raw, err := repo.OrdersForDay(ctx, s.RDB, dateStr)
	observability.ObserveStoreOp("hgetall_orders", start, err)
	if err != nil {
		log.Error().Err(err).Str("date", dateStr).Msg("list orders")
		return []domain.OrderRecord{}
	}

	records := make([]domain.OrderRecord, 0, len(raw))
	for owner, payload := range raw {
		rec, err := domain.DecodeOrderPayload(owner, payload)
		if err != nil {
			log.Warn().Err(err).
				Str("owner", owner).
				Str("date", dateStr).
				Msg("skipping undecodable order payload")
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.PlacedAt.Equal(b.PlacedAt) {
			return a.PlacedAt.Before(b.PlacedAt)
		}
		return a.Owner < b.Owner
	})

	span.SetAttributes(attribute.Int("order.count", len(records)))
	return records
}

// RemoveOrder deletes the owner's order for the given date. It returns true
// iff an order was present and removed. An absent order and a store failure
// both read false: callers get a single "nothing to confirm" answer, and the
// repo layer keeps the tri-state for callers that need it.
func (s *OrderService) RemoveOrder(ctx context.Context, owner, dateStr string) bool {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "RemoveOrder",
		trace.WithAttributes(
			attribute.String("order.owner", owner),
			attribute.String("order.date", dateStr),
		),
	)
	defer span.End()

	start := time.Now()
	removed, err := repo.DeleteOrder(ctx, s.RDB, dateStr, owner)
	observability.ObserveStoreOp("hdel_order", start, err)
	if err != nil {
		log.Error().Err(err).
			Str("owner", owner).
			Str("date", dateStr).
			Msg("remove order")
		return false
	}
	if removed {
		log.Info().Str("owner", owner).Str("date", dateStr).Msg("order removed")
	}
	return removed
}
