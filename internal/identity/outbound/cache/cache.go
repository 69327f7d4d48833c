package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Key prefixes, each scoped by email. Every key self-destructs via TTL;
// there is no sweeper.
const (
	keyOtpLock     = "otp_lock:"
	keySpamLock    = "otp_spam_lock:"
	keyCooldown    = "otp_cooldown:"
	keySendCount   = "otp_request_count:"
	keyOtpData     = "otp_data:"
	keyResetOtp    = "otp_reset_password:"
	keyOtpAttempts = "otp_attempts:"
	keyLoginCount  = "login_attempts:"
	keyLoginLock   = "login_lock:"
	keyResetToken  = "password_reset_token:"

	lockSentinel   = "locked"
	cooldownMarker = "1"
)

// Cache is the redis-backed store for OTP, lockout and cooldown state.
type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("identity.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Cache) exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// increment bumps a counter and refreshes its window on every call, so
// the window slides. INCR+EXPIRE run in one pipeline round trip.
func (c *Cache) increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *Cache) IsOtpLocked(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "IsOtpLocked")
	defer func() { c.endSpan(span, err) }()

	return c.exists(ctx, keyOtpLock+email)
}

func (c *Cache) IsSpamLocked(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "IsSpamLocked")
	defer func() { c.endSpan(span, err) }()

	return c.exists(ctx, keySpamLock+email)
}

func (c *Cache) IsCooldownActive(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "IsCooldownActive")
	defer func() { c.endSpan(span, err) }()

	return c.exists(ctx, keyCooldown+email)
}

func (c *Cache) IsLoginLocked(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "IsLoginLocked")
	defer func() { c.endSpan(span, err) }()

	return c.exists(ctx, keyLoginLock+email)
}

func (c *Cache) IncrementSendCount(ctx context.Context, email string, window time.Duration) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "IncrementSendCount")
	defer func() { c.endSpan(span, err) }()

	return c.increment(ctx, keySendCount+email, window)
}

func (c *Cache) IncrementOtpAttempts(ctx context.Context, email string, window time.Duration) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "IncrementOtpAttempts")
	defer func() { c.endSpan(span, err) }()

	return c.increment(ctx, keyOtpAttempts+email, window)
}

func (c *Cache) IncrementLoginAttempts(ctx context.Context, email string, window time.Duration) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "IncrementLoginAttempts")
	defer func() { c.endSpan(span, err) }()

	return c.increment(ctx, keyLoginCount+email, window)
}

func (c *Cache) SetSpamLock(ctx context.Context, email string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetSpamLock")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keySpamLock+email, lockSentinel, ttl).Err()
}

func (c *Cache) SetOtpLock(ctx context.Context, email string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetOtpLock")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyOtpLock+email, lockSentinel, ttl).Err()
}

func (c *Cache) SetLoginLock(ctx context.Context, email string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetLoginLock")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyLoginLock+email, lockSentinel, ttl).Err()
}

func (c *Cache) SetCooldown(ctx context.Context, email string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetCooldown")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyCooldown+email, cooldownMarker, ttl).Err()
}

func (c *Cache) StoreRegistrationOtp(ctx context.Context, payload entity.RegistrationOtpPayload, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "StoreRegistrationOtp")
	defer func() { c.endSpan(span, err) }()

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyOtpData+payload.Email, raw, ttl).Err()
}

func (c *Cache) GetRegistrationOtp(ctx context.Context, email string) (_ *entity.RegistrationOtpPayload, err error) {
	ctx, span := c.startSpan(ctx, "GetRegistrationOtp")
	defer func() { c.endSpan(span, err) }()

	raw, err := c.client.Get(ctx, keyOtpData+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var payload entity.RegistrationOtpPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

func (c *Cache) DeleteRegistrationOtp(ctx context.Context, email string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteRegistrationOtp")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, keyOtpData+email).Err()
}

func (c *Cache) StoreResetOtp(ctx context.Context, email, code string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "StoreResetOtp")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyResetOtp+email, code, ttl).Err()
}

func (c *Cache) GetResetOtp(ctx context.Context, email string) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "GetResetOtp")
	defer func() { c.endSpan(span, err) }()

	code, err := c.client.Get(ctx, keyResetOtp+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", goerror.ErrNotFound
	}

	return code, err
}

func (c *Cache) DeleteResetOtp(ctx context.Context, email string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteResetOtp")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, keyResetOtp+email).Err()
}

func (c *Cache) DeleteOtpAttempts(ctx context.Context, email string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteOtpAttempts")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, keyOtpAttempts+email).Err()
}

func (c *Cache) DeleteLoginAttempts(ctx context.Context, email string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteLoginAttempts")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, keyLoginCount+email).Err()
}

func (c *Cache) StoreResetToken(ctx context.Context, email, tokenHash string, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "StoreResetToken")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyResetToken+email, tokenHash, ttl).Err()
}

func (c *Cache) GetResetToken(ctx context.Context, email string) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "GetResetToken")
	defer func() { c.endSpan(span, err) }()

	hash, err := c.client.Get(ctx, keyResetToken+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", goerror.ErrNotFound
	}

	return hash, err
}

func (c *Cache) DeleteResetToken(ctx context.Context, email string) (err error) {
	ctx, span := c.startSpan(ctx, "DeleteResetToken")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, keyResetToken+email).Err()
}
