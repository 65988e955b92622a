package model

import "time"

// Session is one login grant. Rows are never updated.
type Session struct {
	Token   string    `gorm:"column:token;primaryKey;type:varchar(64)"`
	UserID  int       `gorm:"column:user_id;not null;index"`
	Expires time.Time `gorm:"column:expires;not null"`
	User    *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}

// ExpiredAt reports whether now is strictly after the expiry.
func (s *Session) ExpiredAt(now time.Time) bool {
	return now.After(s.Expires)
}
