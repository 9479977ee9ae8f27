package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStorage(t *testing.T) *RedisStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStorage(client, "aulatest")
}

func TestRedisStorageRoundTrip(t *testing.T) {
	rs := newRedisStorage(t)
	ctx := context.Background()

	pair := TokenPair{Access: "acc", Refresh: "ref"}
	if err := rs.Save(ctx, pair); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := rs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != pair {
		t.Fatalf("got %+v, want %+v", got, pair)
	}
}

func TestRedisStorageEmpty(t *testing.T) {
	rs := newRedisStorage(t)

	if _, err := rs.Load(context.Background()); !errors.Is(err, ErrNoTokens) {
		t.Fatalf("err = %v, want ErrNoTokens", err)
	}
}

func TestRedisStorageClearIdempotent(t *testing.T) {
	rs := newRedisStorage(t)
	ctx := context.Background()

	if err := rs.Save(ctx, TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatal(err)
	}
	if err := rs.Clear(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := rs.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := rs.Load(ctx); !errors.Is(err, ErrNoTokens) {
		t.Fatalf("err after clear = %v, want ErrNoTokens", err)
	}
}

func TestRedisStoragePrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	a := NewRedisStorage(client, "school-a")
	b := NewRedisStorage(client, "school-b")

	if err := a.Save(ctx, TokenPair{Access: "x", Refresh: "y"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Load(ctx); !errors.Is(err, ErrNoTokens) {
		t.Fatalf("prefixes must not share tokens, err = %v", err)
	}
}
