package storage

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestGetCode_Miss(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client, time.Minute)

	png, ok, err := adapter.GetCode(context.Background(), "code:missing-"+uuid.New().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || png != nil {
		t.Error("expected a miss")
	}
}

func TestSetCode_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)
	key := "code:test-" + uuid.New().String()
	defer client.Del(ctx, key)

	want := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	if err := adapter.SetCode(ctx, key, want); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok, err := adapter.GetCode(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	ttl := client.TTL(ctx, key).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within a minute, got %v", ttl)
	}
}

func TestNewRedisAdapter_DefaultTTL(t *testing.T) {
	adapter := NewRedisAdapter(nil, 0)
	if adapter.ttl != defaultCodeTTL {
		t.Errorf("expected default ttl %v, got %v", defaultCodeTTL, adapter.ttl)
	}
}
