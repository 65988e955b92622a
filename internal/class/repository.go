package class

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pack/internal/model"
)

var (
	ErrNotFound      = errors.New("class: not found")
	ErrDuplicateCode = errors.New("class: join code taken")
	ErrAlreadyMember = errors.New("class: already a member")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListForTeacher(ctx context.Context, teacherID int) ([]Summary, error) {
	var out []Summary
	err := r.db.WithContext(ctx).
		Table("classes AS c").
		Select("c.class_id, c.name, c.subject, c.year_group, c.join_code, COUNT(m.student_id) AS members").
		Joins("LEFT JOIN class_members m ON m.class_id = c.class_id").
		Where("c.teacher_id = ?", teacherID).
		Group("c.class_id").
		Order("c.name").
		Scan(&out).Error
	return out, err
}

func (r *Repository) ListForStudent(ctx context.Context, studentID int) ([]Summary, error) {
	var out []Summary
	err := r.db.WithContext(ctx).
		Table("classes AS c").
		Select("c.class_id, c.name, c.subject, c.year_group, t.title || ' ' || t.surname AS teacher_name").
		Joins("JOIN class_members m ON m.class_id = c.class_id").
		Joins("JOIN teachers t ON t.user_id = c.teacher_id").
		Where("m.student_id = ?", studentID).
		Order("c.name").
		Scan(&out).Error
	return out, err
}

func (r *Repository) Create(ctx context.Context, c *model.Class) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCode
	}
	return err
}

func (r *Repository) FindByJoinCode(ctx context.Context, code string) (*model.Class, error) {
	var c model.Class
	err := r.db.WithContext(ctx).Where("join_code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) AddMember(ctx context.Context, classID, studentID int) error {
	err := r.db.WithContext(ctx).Create(&model.ClassMember{ClassID: classID, StudentID: studentID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMember
	}
	return err
}
