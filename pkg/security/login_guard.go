package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillmatch-backend/pkg/logger"
	"skillmatch-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// INCR with a TTL set on the first hit
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// AttemptStore keeps failed-login counters and lockouts per email
type AttemptStore interface {
	BlockedFor(ctx context.Context, email string) (time.Duration, error)
	AddFailure(ctx context.Context, email string, window time.Duration) (int, error)
	Block(ctx context.Context, email string, d time.Duration) error
	Reset(ctx context.Context, email string) error
}

// LoginGuard locks an email out after repeated failed logins.
// With the default store every check passes when Redis is not configured.
type LoginGuard struct {
	maxAttempts int
	window      time.Duration
	blockFor    time.Duration
	store       AttemptStore
	audit       *AuditLogger
}

type LoginGuardOption func(*LoginGuard)

// WithAttemptStore replaces the Redis-backed store
func WithAttemptStore(s AttemptStore) LoginGuardOption {
	return func(g *LoginGuard) { g.store = s }
}

// NewLoginGuard defaults to 5 attempts in 15 minutes and a 15 minute block
func NewLoginGuard(maxAttempts int, blockFor time.Duration, audit *AuditLogger, opts ...LoginGuardOption) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if blockFor <= 0 {
		blockFor = 15 * time.Minute
	}
	g := &LoginGuard{
		maxAttempts: maxAttempts,
		window:      blockFor,
		blockFor:    blockFor,
		store:       redisAttemptStore{},
		audit:       audit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func failKey(email string) string    { return "fail:login:" + normalizeEmail(email) }
func blockedKey(email string) string { return "blocked:login:" + normalizeEmail(email) }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Blocked returns how long email remains locked out, or zero
func (g *LoginGuard) Blocked(ctx context.Context, email string) (time.Duration, error) {
	ttl, err := g.store.BlockedFor(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("login guard: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

// Failed counts a failed attempt and blocks the email once the limit is hit.
// It reports whether the email is now blocked.
func (g *LoginGuard) Failed(ctx context.Context, email, ip string) (bool, error) {
	count, err := g.store.AddFailure(ctx, email, g.window)
	if err != nil {
		return false, fmt.Errorf("login guard: %w", err)
	}
	g.audit.LoginFailed(email, ip, count)

	if count < g.maxAttempts {
		return false, nil
	}
	if err := g.store.Block(ctx, email, g.blockFor); err != nil {
		return false, fmt.Errorf("login guard: %w", err)
	}
	if err := g.store.Reset(ctx, email); err != nil {
		logger.Log.Warn("Login guard could not clear failure counter", "error", err)
	}
	g.audit.LoginBlocked(email, ip)
	return true, nil
}

// Succeeded clears the failure counter
func (g *LoginGuard) Succeeded(ctx context.Context, email string) error {
	if err := g.store.Reset(ctx, email); err != nil {
		return fmt.Errorf("login guard: %w", err)
	}
	g.audit.Record(EventLoginSucceeded)
	return nil
}

// redisAttemptStore resolves the shared client per call; a nil client
// records nothing and never blocks.
type redisAttemptStore struct{}

func (redisAttemptStore) BlockedFor(ctx context.Context, email string) (time.Duration, error) {
	client := redis.Client()
	if client == nil {
		return 0, nil
	}
	return client.TTL(ctx, blockedKey(email)).Result()
}

func (redisAttemptStore) AddFailure(ctx context.Context, email string, window time.Duration) (int, error) {
	client := redis.Client()
	if client == nil {
		return 0, nil
	}
	return client.Eval(ctx, incrWithTTLScript, []string{failKey(email)}, int(window.Seconds())).Int()
}

func (redisAttemptStore) Block(ctx context.Context, email string, d time.Duration) error {
	client := redis.Client()
	if client == nil {
		return nil
	}
	return client.Set(ctx, blockedKey(email), "1", d).Err()
}

func (redisAttemptStore) Reset(ctx context.Context, email string) error {
	client := redis.Client()
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, failKey(email)).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return err
	}
	return nil
}
