package repo

import (
	"context"
	"testing"
)

func TestAddMessage_StoresMemberWithScore(t *testing.T) {
	srv, rdb := newTestRedis(t)
	ctx := context.Background()

	if err := AddMessage(ctx, rdb, 42, "hello", 1700000000); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	score, err := srv.ZScore("messages:user:42", "hello")
	if err != nil {
		t.Fatalf("ZScore: %v", err)
	}
	if score != 1700000000 {
		t.Fatalf("score = %v; want 1700000000", score)
	}
}

func TestAddMessage_DuplicateTextUpdatesScoreInPlace(t *testing.T) {
	// Text is the uniqueness key within an archive: resending the same text
	// must collapse to ONE member carrying the latest score. This pins the
	// accepted dedupe-by-text quirk of the scoring scheme.
	srv, rdb := newTestRedis(t)
	ctx := context.Background()

	if err := AddMessage(ctx, rdb, 42, "hello", 1700000000); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := AddMessage(ctx, rdb, 42, "hello", 1700000500); err != nil {
		t.Fatalf("second add: %v", err)
	}

	members, err := srv.ZMembers("messages:user:42")
	if err != nil {
		t.Fatalf("ZMembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("members = %v; want exactly one", members)
	}
	score, err := srv.ZScore("messages:user:42", "hello")
	if err != nil {
		t.Fatalf("ZScore: %v", err)
	}
	if score != 1700000500 {
		t.Fatalf("score = %v; want the later send time 1700000500", score)
	}
}

func TestMessagesDesc_NewestFirstWithLimit(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	_ = AddMessage(ctx, rdb, 7, "first", 100)
	_ = AddMessage(ctx, rdb, 7, "second", 200)
	_ = AddMessage(ctx, rdb, 7, "third", 300)

	zs, err := MessagesDesc(ctx, rdb, 7, 2)
	if err != nil {
		t.Fatalf("MessagesDesc: %v", err)
	}
	if len(zs) != 2 {
		t.Fatalf("len = %d; want 2", len(zs))
	}
	if zs[0].Member != "third" || zs[1].Member != "second" {
		t.Fatalf("order = [%v %v]; want [third second]", zs[0].Member, zs[1].Member)
	}
}

func TestMessagesDesc_EmptyArchive(t *testing.T) {
	_, rdb := newTestRedis(t)

	zs, err := MessagesDesc(context.Background(), rdb, 404, 10)
	if err != nil {
		t.Fatalf("MessagesDesc on absent key: %v", err)
	}
	if len(zs) != 0 {
		t.Fatalf("len = %d; want 0", len(zs))
	}
}

func TestArchives_AreScopedPerUser(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	_ = AddMessage(ctx, rdb, 1, "hello", 100)
	_ = AddMessage(ctx, rdb, 2, "hello", 200)

	zs, err := MessagesDesc(ctx, rdb, 1, 10)
	if err != nil {
		t.Fatalf("MessagesDesc: %v", err)
	}
	if len(zs) != 1 || zs[0].Score != 100 {
		t.Fatalf("user 1 archive = %v; want only its own entry", zs)
	}
}
