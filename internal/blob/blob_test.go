package blob

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMemoryGetMissingKey(t *testing.T) {
	m := NewMemory()

	val, ok, err := m.Get(context.Background(), "appData")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok || val != nil {
		t.Fatalf("expected missing key, got ok=%v val=%q", ok, val)
	}
}

func TestMemorySetCopiesValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	payload := []byte(`{"rent":100}`)
	if err := m.Set(ctx, "appData", payload); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	payload[0] = 'X'

	val, ok, err := m.Get(ctx, "appData")
	if err != nil || !ok {
		t.Fatalf("expected stored value, ok=%v err=%v", ok, err)
	}
	if string(val) != `{"rent":100}` {
		t.Fatalf("stored value was aliased: %q", val)
	}
}

func TestRedisRoundTripIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	r := NewRedis(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	t.Cleanup(func() {
		_ = r.client.Del(context.Background(), "kioskanalyzer-test-"+t.Name()).Err()
		_ = r.Close()
	})
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	exerciseStore(t, r)
}

func TestPostgresRoundTripIntegration(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pg, err := NewPostgres(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pg.db.ExecContext(context.Background(), `DELETE FROM kv_blobs WHERE key LIKE 'kioskanalyzer-test-%'`)
		_ = pg.Close()
	})

	exerciseStore(t, pg)
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "kioskanalyzer-test-" + t.Name()

	if err := s.Set(ctx, key, []byte(`{"rent":1}`)); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if err := s.Set(ctx, key, []byte(`{"rent":2}`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	val, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected value, ok=%v err=%v", ok, err)
	}
	if string(val) != `{"rent":2}` {
		t.Fatalf("unexpected value %q", val)
	}
}

func TestOpenWithoutBackendsUsesMemory(t *testing.T) {
	s, backend, closers, err := Open(context.Background(), Options{}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if backend != BackendMemory || len(closers) != 0 {
		t.Fatalf("expected memory backend without closers, got %s (%d closers)", backend, len(closers))
	}
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("expected *Memory, got %T", s)
	}
}

func TestOpenUnreachableRedisFallsBackToMemory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, backend, _, err := Open(ctx, Options{RedisAddr: "127.0.0.1:1"}, nil)
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if backend != BackendMemory {
		t.Fatalf("expected memory fallback, got %s", backend)
	}
}
