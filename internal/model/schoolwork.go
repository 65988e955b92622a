package model

import "time"

type Schoolwork struct {
	ID          int        `gorm:"column:schoolwork_id;primaryKey;autoIncrement"`
	StudentID   int        `gorm:"column:student_id;not null;index"`
	Title       string     `gorm:"column:title;type:varchar(200);not null"`
	Subject     string     `gorm:"column:subject;type:varchar(100)"`
	Description string     `gorm:"column:description;type:text"`
	Due         time.Time  `gorm:"column:due;not null"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	Student     *Student   `gorm:"foreignKey:StudentID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Schoolwork) TableName() string {
	return "schoolwork"
}

func (s *Schoolwork) Completed() bool {
	return s.CompletedAt != nil
}
