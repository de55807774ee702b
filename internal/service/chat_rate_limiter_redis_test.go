package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeWindowStore responde como el script: {count, ttl en ms}.
type fakeWindowStore struct {
	count int64
	ttlMS int64
	err   error
	reply []interface{}

	keys []string
	args []interface{}
}

func (f *fakeWindowStore) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.keys = keys
	f.args = args
	cmd := redis.NewCmd(ctx)
	switch {
	case f.err != nil:
		cmd.SetErr(f.err)
	case f.reply != nil:
		cmd.SetVal(f.reply)
	default:
		cmd.SetVal([]interface{}{f.count, f.ttlMS})
	}
	return cmd
}

func TestChatRateLimiter_CountsPerClientWindow(t *testing.T) {
	store := &fakeWindowStore{count: 2, ttlMS: 45000}
	l := newRedisChatRateLimiter(store, 2*time.Minute, 3, zap.NewNop())

	res := l.Allow(context.Background(), " 10.0.0.1 ")
	if !res.Allowed || res.Limit != 3 || res.Remaining != 1 || res.RetryAfter != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(store.keys) != 1 || store.keys[0] != "chat:rl:10.0.0.1" {
		t.Fatalf("unexpected redis key %+v", store.keys)
	}
	if len(store.args) != 1 || store.args[0] != int64(120000) {
		t.Fatalf("expected window in ms, got %+v", store.args)
	}
}

func TestChatRateLimiter_DeniesWithRetryAfter(t *testing.T) {
	store := &fakeWindowStore{count: 4, ttlMS: 12500}
	l := newRedisChatRateLimiter(store, time.Minute, 3, zap.NewNop())

	res := l.Allow(context.Background(), "10.0.0.1")
	if res.Allowed {
		t.Fatalf("expected deny over the limit")
	}
	if res.Remaining != 0 {
		t.Fatalf("expected no remaining messages, got %d", res.Remaining)
	}
	if res.RetryAfter != 12500*time.Millisecond {
		t.Fatalf("expected retry after the window ttl, got %s", res.RetryAfter)
	}
}

func TestChatRateLimiter_ClientsWithoutIPShareBucket(t *testing.T) {
	store := &fakeWindowStore{count: 1, ttlMS: 60000}
	l := newRedisChatRateLimiter(store, time.Minute, 3, nil)

	if res := l.Allow(context.Background(), "  "); !res.Allowed {
		t.Fatalf("expected first message allowed")
	}
	if store.keys[0] != "chat:rl:"+unknownClientKey {
		t.Fatalf("unexpected key %q", store.keys[0])
	}
}

func TestChatRateLimiter_FailOpenLogsRedisError(t *testing.T) {
	cases := []struct {
		name  string
		store *fakeWindowStore
	}{
		{"redis error", &fakeWindowStore{err: errors.New("redis down")}},
		{"short reply", &fakeWindowStore{reply: []interface{}{int64(1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			l := newRedisChatRateLimiter(c.store, time.Minute, 3, zap.New(core))

			res := l.Allow(context.Background(), "10.0.0.1")
			if !res.Allowed || res.Limit != 0 {
				t.Fatalf("expected undecided allow, got %+v", res)
			}
			if logs.FilterMessage("chat rate limiter unavailable, allowing message").Len() != 1 {
				t.Fatalf("expected the redis failure to be logged, got %+v", logs.All())
			}
		})
	}
}

func TestChatRateLimiter_Disabled(t *testing.T) {
	if l := NewRedisChatRateLimiter(nil, time.Minute, 3, nil); l != nil {
		t.Fatalf("expected nil limiter without redis client")
	}
	var l *redisChatRateLimiter
	if res := l.Allow(context.Background(), "10.0.0.1"); !res.Allowed {
		t.Fatalf("expected nil limiter to allow")
	}
}
