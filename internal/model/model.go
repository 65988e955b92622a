package model

import (
	"fmt"

	"gorm.io/gorm"
)

// GetModels lists every table to migrate, parents before children.
func GetModels() []any {
	return []any{
		&User{},
		&Student{},
		&Teacher{},
		&Session{},
		&Class{},
		&ClassMember{},
		&Schoolwork{},
	}
}

func InitTable(db *gorm.DB) error {
	if err := db.AutoMigrate(GetModels()...); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	return nil
}
