package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block (default: 5)
	AttemptWindow time.Duration // Time window for tracking attempts (default: 15min)
	BlockDuration time.Duration // How long to block after max attempts (default: 15min)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed logins per email in Redis and blocks the email
// once the threshold is reached. A nil client disables tracking.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	def := DefaultLoginTrackerConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = def.MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = def.AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = def.BlockDuration
	}
	if logger == nil {
		logger = NopSecurityLogger()
	}
	return &LoginTracker{client: client, config: config, logger: logger}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	blockedLoginUserPrefix = "blocked:login:user:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// Enabled reports whether a Redis client backs the tracker.
func (lt *LoginTracker) Enabled() bool {
	return lt != nil && lt.client != nil
}

// IsBlocked checks whether the email is currently blocked. Without Redis it
// fails open.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	if !lt.Enabled() {
		return false, nil
	}
	exists, err := lt.client.Exists(ctx, blockedLoginUserPrefix+HashValue(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check user block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt increments the counter and blocks the email when the
// threshold is reached. Returns whether the email is now blocked.
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, requestID string) (bool, error) {
	if !lt.Enabled() {
		return false, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	count, err := lt.atomicIncrement(ctx, failLoginUserPrefix+HashValue(email), ttlSeconds)
	if err != nil {
		return false, fmt.Errorf("failed to increment user counter: %w", err)
	}
	if count < lt.config.MaxAttempts {
		return false, nil
	}

	if err := lt.client.Set(ctx, blockedLoginUserPrefix+HashValue(email), "1", lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("failed to set user block: %w", err)
	}
	lt.logger.LogBlockCreated(ctx, "email", email, requestID, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) error {
	if !lt.Enabled() {
		return nil
	}
	if err := lt.client.Del(ctx, failLoginUserPrefix+HashValue(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}
	return nil
}
