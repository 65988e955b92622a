package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pack/internal/model"
)

// DefaultPassword is the plain-text password of every fixture user.
const DefaultPassword = "Password1"

// NewTestUser builds an unsaved user with a unique username and email.
func NewTestUser(opts ...UserOption) *model.User {
	uniqueID := uuid.NewString()[:8]

	u := &model.User{
		Username:     "user_" + uniqueID,
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		PasswordHash: hash(DefaultPassword),
		FirstName:    "Test",
		Role:         model.RoleStudent,
		CreatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateTestUser inserts a fixture user.
func CreateTestUser(db *gorm.DB, opts ...UserOption) *model.User {
	u := NewTestUser(opts...)
	if err := db.Create(u).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return u
}

type UserOption func(*model.User)

func WithUsername(username string) UserOption {
	return func(u *model.User) {
		u.Username = username
	}
}

func WithEmail(email string) UserOption {
	return func(u *model.User) {
		u.Email = email
	}
}

func WithRole(role model.Role) UserOption {
	return func(u *model.User) {
		u.Role = role
	}
}

func WithFirstName(name string) UserOption {
	return func(u *model.User) {
		u.FirstName = name
	}
}

// WithPassword sets the password (will be hashed)
func WithPassword(password string) UserOption {
	return func(u *model.User) {
		u.PasswordHash = hash(password)
	}
}

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}
