package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "offmarket_estates/internal/adapters/redis"
)

func newTestCache(t *testing.T) *redisad.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0)
}

func TestCache_SetGetDel(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct{ Name string }
	if err := c.Set(ctx, "k", payload{Name: "Marbella"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok || got.Name != "Marbella" {
		t.Fatalf("get: ok=%v err=%v got=%+v", ok, err, got)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "k", &got)
	if err != nil || ok {
		t.Fatalf("expected miss after del: ok=%v err=%v", ok, err)
	}
}

func TestCache_SetNXClaimsOnce(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	first, err := c.SetNX(ctx, "submit:abc", 60)
	if err != nil || !first {
		t.Fatalf("first claim: ok=%v err=%v", first, err)
	}
	second, err := c.SetNX(ctx, "submit:abc", 60)
	if err != nil || second {
		t.Fatalf("second claim should fail: ok=%v err=%v", second, err)
	}
}
