package model

import "time"

type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type User struct {
	ID           int        `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;type:varchar(50);not null;uniqueIndex"`
	Email        string     `gorm:"column:email;type:varchar(254);not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password;type:varchar(255);not null"`
	FirstName    string     `gorm:"column:first_name;type:varchar(100);not null"`
	Role         Role       `gorm:"column:role;type:varchar(10);not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastLogin    *time.Time `gorm:"column:last_login"`
}

func (User) TableName() string {
	return "users"
}

// Identity is what a resolved session exposes to handlers and pages.
type Identity struct {
	UserID    int       `json:"user_id" example:"42"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	FirstName string    `json:"first_name" example:"Alice"`
	Role      Role      `json:"role" example:"Student" enums:"Student,Teacher"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Identity() *Identity {
	return &Identity{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
