package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"pack/internal/metrics"
	"pack/internal/model"
)

// Outcome is why a token did or did not resolve. Only logs and metrics see
// anything finer than "ok or not".
type Outcome string

const (
	OK         Outcome = "ok"
	NoCookie   Outcome = "no_cookie"
	Unknown    Outcome = "unknown"
	Expired    Outcome = "expired"
	NoUser     Outcome = "no_user"
	StoreError Outcome = "store_error"
)

type UserFinder interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
}

type Resolver struct {
	store      Store
	users      UserFinder
	cookieName string
	now        func() time.Time
}

type ResolverOption func(*Resolver)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

func NewResolver(store Store, users UserFinder, cookieName string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:      store,
		users:      users,
		cookieName: cookieName,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) CookieName() string {
	return r.cookieName
}

// Validate checks that token names a live session. An expired row is deleted
// before returning. It never touches the users table.
func (r *Resolver) Validate(ctx context.Context, token string) (*model.Session, Outcome) {
	if token == "" {
		return nil, NoCookie
	}

	s, err := r.store.Find(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil, Unknown
	}
	if err != nil {
		logrus.WithError(err).Warn("session lookup failed")
		return nil, StoreError
	}

	if s.ExpiredAt(r.now()) {
		if err := r.store.DeleteByToken(ctx, token); err != nil {
			logrus.WithError(err).WithField("user_id", s.UserID).Warn("delete expired session failed")
		}
		return nil, Expired
	}

	return s, OK
}

// Resolve returns the identity behind token, or false. Every failure,
// including database errors, reads as not authenticated.
func (r *Resolver) Resolve(ctx context.Context, token string) (*model.Identity, bool) {
	id, outcome := r.resolve(ctx, token)
	metrics.SessionResolutions.WithLabelValues(string(outcome)).Inc()
	return id, outcome == OK
}

func (r *Resolver) resolve(ctx context.Context, token string) (*model.Identity, Outcome) {
	s, outcome := r.Validate(ctx, token)
	if outcome != OK {
		return nil, outcome
	}

	u, err := r.users.FindByID(ctx, s.UserID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", s.UserID).Warn("session user lookup failed")
		return nil, NoUser
	}
	return u.Identity(), OK
}

// FromRequest resolves the session cookie on req.
func (r *Resolver) FromRequest(req *http.Request) (*model.Identity, bool) {
	return r.Resolve(req.Context(), r.Token(req))
}

// Token reads the raw cookie value, or "".
func (r *Resolver) Token(req *http.Request) string {
	c, err := req.Cookie(r.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
