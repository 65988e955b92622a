// Package code keeps short-lived email verification codes in Redis.
package code

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RedisKeyPrefix = "pack:code:email:"
	RateKeyPrefix  = "pack:code:rate:"

	DefaultRateLimit  = 5
	DefaultRateWindow = time.Hour
)

var (
	ErrExpired  = errors.New("code: expired or never sent")
	ErrMismatch = errors.New("code: does not match")
)

// consume deletes the key only when the stored code matches.
var consume = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
	return -1
end
if v == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// hit counts one send against every key and reports 1 once any key is
// past ARGV[1]. A key's window starts at its first hit.
var hit = redis.NewScript(`
local over = 0
for _, k in ipairs(KEYS) do
	local n = redis.call("INCR", k)
	if n == 1 then
		redis.call("PEXPIRE", k, ARGV[2])
	end
	if n > tonumber(ARGV[1]) then
		over = 1
	end
end
return over
`)

type Store struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	limit  int
	window time.Duration
}

type Option func(*Store)

// WithRateLimit allows at most limit sends per user and per address within
// window. A limit of zero or less turns the check off.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Store) {
		s.limit = limit
		if window > 0 {
			s.window = window
		}
	}
}

func NewStore(rdb redis.Cmdable, ttl time.Duration, opts ...Option) *Store {
	s := &Store{rdb: rdb, ttl: ttl, limit: DefaultRateLimit, window: DefaultRateWindow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(userID int, email string) string {
	return fmt.Sprintf("%s%d:%s", RedisKeyPrefix, userID, email)
}

// Save stores code for userID changing to email, replacing any earlier one.
func (s *Store) Save(ctx context.Context, userID int, email, code string) error {
	if err := s.rdb.Set(ctx, key(userID, email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	return nil
}

// Consume checks code and deletes it on a match.
func (s *Store) Consume(ctx context.Context, userID int, email, code string) error {
	n, err := consume.Run(ctx, s.rdb, []string{key(userID, email)}, code).Int()
	if err != nil {
		return fmt.Errorf("check code: %w", err)
	}
	switch n {
	case 1:
		return nil
	case -1:
		return ErrExpired
	default:
		return ErrMismatch
	}
}

// Allow records a send for userID to email and reports whether both stay
// within the rate limit.
func (s *Store) Allow(ctx context.Context, userID int, email string) (bool, error) {
	if s.limit <= 0 {
		return true, nil
	}
	keys := []string{
		fmt.Sprintf("%suser:%d", RateKeyPrefix, userID),
		RateKeyPrefix + "addr:" + email,
	}
	over, err := hit.Run(ctx, s.rdb, keys, s.limit, s.window.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit code: %w", err)
	}
	return over == 0, nil
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

const digits = "0123456789"

// Generate returns a numeric code of length n from crypto/rand.
func Generate(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(digits)))
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = digits[v.Int64()]
	}
	return string(b), nil
}
