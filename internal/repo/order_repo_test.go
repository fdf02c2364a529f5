package repo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// test store helper: an in-process Redis plus a client pointed at it.
func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return srv, rdb
}

func TestUpsertOrder_WritesHashField(t *testing.T) {
	srv, rdb := newTestRedis(t)
	ctx := context.Background()

	if err := UpsertOrder(ctx, rdb, "2025-04-01", "@alice", `{"food":"Pizza"}`); err != nil {
		t.Fatalf("UpsertOrder: %v", err)
	}

	got := srv.HGet("food_orders:2025-04-01", "@alice")
	if got != `{"food":"Pizza"}` {
		t.Fatalf("stored payload = %q; want %q", got, `{"food":"Pizza"}`)
	}
}

func TestUpsertOrder_OverwritesSameOwner(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	if err := UpsertOrder(ctx, rdb, "2025-04-01", "@alice", `{"food":"Pizza"}`); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := UpsertOrder(ctx, rdb, "2025-04-01", "@alice", `{"food":"Salad"}`); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	all, err := OrdersForDay(ctx, rdb, "2025-04-01")
	if err != nil {
		t.Fatalf("OrdersForDay: %v", err)
	}
	// Exactly one live record per (day, owner); the second write wins.
	if len(all) != 1 || all["@alice"] != `{"food":"Salad"}` {
		t.Fatalf("unexpected hash contents: %v", all)
	}
}

func TestOrdersForDay_DistinctOwnersDistinctFields(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	_ = UpsertOrder(ctx, rdb, "2025-04-01", "@alice", `{"food":"Pizza"}`)
	_ = UpsertOrder(ctx, rdb, "2025-04-01", "bob", `{"food":"Pasta"}`)
	// Same owner on another day lives under another key.
	_ = UpsertOrder(ctx, rdb, "2025-04-02", "@alice", `{"food":"Soup"}`)

	all, err := OrdersForDay(ctx, rdb, "2025-04-01")
	if err != nil {
		t.Fatalf("OrdersForDay: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d; want 2 (day scoping leaked?)", len(all))
	}
}

func TestOrdersForDay_AbsentDayIsEmptyNotError(t *testing.T) {
	_, rdb := newTestRedis(t)

	all, err := OrdersForDay(context.Background(), rdb, "1999-12-31")
	if err != nil {
		t.Fatalf("OrdersForDay on absent key: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("len = %d; want 0", len(all))
	}
}

func TestDeleteOrder_TriState(t *testing.T) {
	srv, rdb := newTestRedis(t)
	ctx := context.Background()

	_ = UpsertOrder(ctx, rdb, "2025-04-01", "@alice", `{"food":"Pizza"}`)

	removed, err := DeleteOrder(ctx, rdb, "2025-04-01", "@alice")
	if err != nil || !removed {
		t.Fatalf("first delete = (%v, %v); want (true, nil)", removed, err)
	}

	// Second delete of the same field: nothing present.
	removed, err = DeleteOrder(ctx, rdb, "2025-04-01", "@alice")
	if err != nil || removed {
		t.Fatalf("second delete = (%v, %v); want (false, nil)", removed, err)
	}

	// Store failure is distinguishable at this layer.
	srv.Close()
	_, err = DeleteOrder(ctx, rdb, "2025-04-01", "@alice")
	if err == nil {
		t.Fatal("expected error after store shutdown")
	}
}
