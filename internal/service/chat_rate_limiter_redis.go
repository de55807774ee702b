package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitResult es la decision del limitador para un mensaje.
// Limit en cero significa que no hubo decision (limitador apagado o Redis
// caido) y el mensaje pasa.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// ChatRateLimiter limita cuantos mensajes puede mandar un cliente por ventana.
type ChatRateLimiter interface {
	Allow(ctx context.Context, clientKey string) RateLimitResult
}

// El script devuelve {mensajes en la ventana, ms restantes}. Si la clave
// quedo sin TTL (EXPIRE fallido) se lo vuelve a poner para no bloquear para
// siempre a ese cliente.
const chatWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`

const unknownClientKey = "unknown"

type redisChatRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
	logger *zap.Logger
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisChatRateLimiter cuenta mensajes por IP en una ventana fija.
// Devuelve nil sin cliente de Redis: el router lo toma como "sin limite".
func NewRedisChatRateLimiter(client *redis.Client, window time.Duration, max int, logger *zap.Logger) ChatRateLimiter {
	if client == nil {
		return nil
	}
	return newRedisChatRateLimiter(client, window, max, logger)
}

func newRedisChatRateLimiter(client redisEvaler, window time.Duration, max int, logger *zap.Logger) *redisChatRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisChatRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "chat:rl:",
		logger: logger,
	}
}

// Allow falla abierto: si Redis no responde se registra el error y el
// mensaje pasa. Los clientes sin IP comparten un mismo contador.
func (l *redisChatRateLimiter) Allow(ctx context.Context, clientKey string) RateLimitResult {
	if l == nil || l.client == nil {
		return RateLimitResult{Allowed: true}
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		key = unknownClientKey
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	vals, err := l.client.Eval(ctx, chatWindowScript, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err == nil && len(vals) != 2 {
		err = fmt.Errorf("unexpected script reply %v", vals)
	}
	if err != nil {
		l.logger.Warn("chat rate limiter unavailable, allowing message",
			zap.String("client", key),
			zap.Error(err),
		)
		return RateLimitResult{Allowed: true}
	}

	count, ttl := int(vals[0]), time.Duration(vals[1])*time.Millisecond
	res := RateLimitResult{
		Allowed:   count <= l.max,
		Limit:     l.max,
		Remaining: l.max - count,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = ttl
	}
	return res
}
