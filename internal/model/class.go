package model

import "time"

type Class struct {
	ID        int       `gorm:"column:class_id;primaryKey;autoIncrement"`
	TeacherID int       `gorm:"column:teacher_id;not null;index"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Subject   string    `gorm:"column:subject;type:varchar(100);not null"`
	YearGroup int       `gorm:"column:year_group"`
	JoinCode  string    `gorm:"column:join_code;type:varchar(8);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	Teacher   *Teacher  `gorm:"foreignKey:TeacherID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Class) TableName() string {
	return "classes"
}

type ClassMember struct {
	ClassID   int       `gorm:"column:class_id;primaryKey;autoIncrement:false"`
	StudentID int       `gorm:"column:student_id;primaryKey;autoIncrement:false;index"`
	JoinedAt  time.Time `gorm:"column:joined_at;autoCreateTime"`
	Class     *Class    `gorm:"foreignKey:ClassID;references:ID;constraint:OnDelete:CASCADE"`
	Student   *Student  `gorm:"foreignKey:StudentID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (ClassMember) TableName() string {
	return "class_members"
}
