package session

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pack/internal/metrics"
	"pack/internal/model"
)

type LoginRecorder interface {
	TouchLastLogin(ctx context.Context, id int, at time.Time) error
}

// Issuer creates the single live session of a user.
type Issuer struct {
	store Store
	users LoginRecorder
	ttl   time.Duration
	now   func() time.Time
}

func NewIssuer(store Store, users LoginRecorder, ttl time.Duration) *Issuer {
	return &Issuer{store: store, users: users, ttl: ttl, now: time.Now}
}

// Issue replaces every session userID holds with a fresh one. flow labels the
// metric (login, signup, password_change).
func (i *Issuer) Issue(ctx context.Context, userID int, flow string) (*model.Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := i.now()
	s := &model.Session{
		Token:   token,
		UserID:  userID,
		Expires: now.Add(i.ttl),
	}
	if err := i.store.Replace(ctx, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if err := i.users.TouchLastLogin(ctx, userID, now); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("update last_login failed")
	}

	metrics.SessionsIssued.WithLabelValues(flow).Inc()
	return s, nil
}
