package schoolwork

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pack/internal/model"
)

var ErrNotFound = errors.New("schoolwork: not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListForStudent(ctx context.Context, studentID int) ([]model.Schoolwork, error) {
	var out []model.Schoolwork
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("due").Find(&out).Error
	return out, err
}

func (r *Repository) Create(ctx context.Context, w *model.Schoolwork) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// SetCompleted only touches rows owned by studentID.
func (r *Repository) SetCompleted(ctx context.Context, id, studentID int, at *time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Schoolwork{}).
		Where("schoolwork_id = ? AND student_id = ?", id, studentID).
		Update("completed_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id, studentID int) error {
	result := r.db.WithContext(ctx).
		Where("schoolwork_id = ? AND student_id = ?", id, studentID).
		Delete(&model.Schoolwork{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
