// Package user is the only code that reads or writes the users table and
// the role profile tables.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pack/internal/model"
)

var (
	ErrNotFound  = errors.New("user: not found")
	ErrDuplicate = errors.New("user: username or email already exists")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check existing user: %w", err)
	}
	return count > 0, nil
}

// EmailInUse reports whether another user already owns email.
func (r *Repository) EmailInUse(ctx context.Context, email string, exceptID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND user_id <> ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return duplicate(err)
	}
	return nil
}

// Delete removes the user row. Only signup compensation calls this.
func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "user_id = ?", id).Error
}

func (r *Repository) CreateStudent(ctx context.Context, s *model.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// CreateTeacher inserts the teacher profile and its starting classes together.
func (r *Repository) CreateTeacher(ctx context.Context, t *model.Teacher, classes []model.Class) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("insert teacher: %w", err)
		}
		for i := range classes {
			classes[i].TeacherID = t.UserID
		}
		if len(classes) > 0 {
			if err := tx.Create(&classes).Error; err != nil {
				return fmt.Errorf("insert classes: %w", err)
			}
		}
		return nil
	})
}

func (r *Repository) FindStudent(ctx context.Context, userID int) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *Repository) UpdateEmail(ctx context.Context, id int, email string) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Update("email", email).Error
	return duplicate(err)
}

func (r *Repository) UpdatePassword(ctx context.Context, id int, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Update("password", hash).Error
}

func (r *Repository) TouchLastLogin(ctx context.Context, id int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Update("last_login", at).Error
}

func (r *Repository) SetProgressEmails(ctx context.Context, userID int, enabled bool) error {
	res := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("user_id = ?", userID).
		Update("progress_emails", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
