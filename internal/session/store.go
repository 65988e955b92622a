// Package session owns the sessions table and turns a session cookie into an
// identity.
package session

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pack/internal/model"
)

var ErrNotFound = errors.New("session: not found")

// Store is the full set of operations allowed on sessions.
type Store interface {
	Create(ctx context.Context, s *model.Session) error
	Find(ctx context.Context, token string) (*model.Session, error)
	// DeleteByToken is a no-op when the row is already gone.
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID int) error
	// Replace drops every session of s.UserID and inserts s atomically.
	// Concurrent calls for one user leave exactly one session.
	Replace(ctx context.Context, s *model.Session) error
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) Find(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

func (r *Repository) DeleteAllForUser(ctx context.Context, userID int) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{}).Error
}

func (r *Repository) Replace(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the user row lock serializes Replace calls for the same user
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("user_id").
			Where("user_id = ?", s.UserID).
			Take(&model.User{}).Error
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		if err := tx.Where("user_id = ?", s.UserID).Delete(&model.Session{}).Error; err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		if err := tx.Create(s).Error; err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
}
