package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hydrostat/auth-service/internal/infrastructure/config"
)

// LoginThrottle counts failed login attempts per email in a rolling window.
// Key format: login_fail:<email>
//
// The throttle is an auxiliary guard, not the credential check itself, so it
// fails open: if Redis is unreachable the attempt is allowed and the error is
// logged.
type LoginThrottle struct {
	client *redis.Client
	cfg    config.ThrottleConfig
	log    zerolog.Logger
}

func NewLoginThrottle(client *redis.Client, cfg config.ThrottleConfig, log zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, cfg: cfg, log: log}
}

// TooMany reports whether the email has exceeded the failure budget.
func (t *LoginThrottle) TooMany(ctx context.Context, email string) bool {
	n, err := t.client.Get(ctx, t.key(email)).Int()
	if err != nil {
		if err != redis.Nil {
			t.log.Warn().Err(err).Msg("login throttle check failed, allowing")
		}
		return false
	}
	return n >= t.cfg.MaxFailures
}

// RecordFailure bumps the failure counter; the window TTL is set on the first
// failure and left to expire.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	key := t.key(email)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.log.Warn().Err(err).Msg("login throttle incr failed")
		return
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.cfg.Window).Err(); err != nil {
			t.log.Warn().Err(err).Msg("login throttle expire failed")
		}
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		t.log.Warn().Err(err).Msg("login throttle reset failed")
	}
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login_fail:%s", email)
}
