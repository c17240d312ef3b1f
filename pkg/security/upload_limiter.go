package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillmatch-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// ErrLimiterUnavailable is returned alongside an allow decision when Redis is down
var ErrLimiterUnavailable = errors.New("upload limiter unavailable: redis not connected")

// sliding window over a sorted set
// KEYS[1] = key, ARGV = limit, window seconds, now (unix ms)
// returns 1 when the upload is admitted
const resumeUploadScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2]) * 1000
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
    return 0
end
redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('PEXPIRE', key, window)
return 1
`

// UploadLimiter bounds résumé uploads per client IP per minute and per user per day
type UploadLimiter struct {
	perMinute int
	perDay    int
	now       func() time.Time
}

// NewUploadLimiter defaults to 10 per minute and 50 per day
func NewUploadLimiter(perMinute, perDay int) *UploadLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{perMinute: perMinute, perDay: perDay, now: time.Now}
}

func ipKey(ip string) string       { return "ratelimit:resume:ip:" + ip }
func userKey(userID string) string { return "ratelimit:resume:user:" + userID }

// Allow reports whether another upload may proceed and, if not, how many
// seconds the caller should wait. Without Redis it admits the upload and
// returns ErrLimiterUnavailable so the caller can log it.
func (l *UploadLimiter) Allow(ctx context.Context, ip, userID string) (bool, int, error) {
	client := redis.Client()
	if client == nil {
		return true, 0, ErrLimiterUnavailable
	}

	now := l.now().UnixMilli()

	ok, err := l.check(ctx, client, ipKey(ip), l.perMinute, 60, now)
	if err != nil {
		return false, 60, fmt.Errorf("upload limit check: %w", err)
	}
	if !ok {
		return false, 60, nil
	}

	if userID == "" {
		return true, 0, nil
	}
	ok, err = l.check(ctx, client, userKey(userID), l.perDay, 86400, now)
	if err != nil {
		return false, 3600, fmt.Errorf("upload limit check: %w", err)
	}
	if !ok {
		return false, 3600, nil
	}
	return true, 0, nil
}

func (l *UploadLimiter) check(ctx context.Context, client *goredis.Client, key string, limit, windowSec int, now int64) (bool, error) {
	res, err := client.Eval(ctx, resumeUploadScript, []string{key}, limit, windowSec, now).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Remaining returns how many uploads the IP and the user have left
func (l *UploadLimiter) Remaining(ctx context.Context, ip, userID string) (int, int, error) {
	client := redis.Client()
	if client == nil {
		return 0, 0, ErrLimiterUnavailable
	}
	now := l.now().UnixMilli()

	used, err := count(ctx, client, ipKey(ip), 60, now)
	if err != nil {
		return 0, 0, err
	}
	ipLeft := max(l.perMinute-used, 0)

	if userID == "" {
		return ipLeft, l.perDay, nil
	}
	used, err = count(ctx, client, userKey(userID), 86400, now)
	if err != nil {
		return ipLeft, 0, err
	}
	return ipLeft, max(l.perDay-used, 0), nil
}

func count(ctx context.Context, client *goredis.Client, key string, windowSec int, now int64) (int, error) {
	cutoff := now - int64(windowSec)*1000
	if err := client.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff)).Err(); err != nil {
		return 0, err
	}
	n, err := client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
