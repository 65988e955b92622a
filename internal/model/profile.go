package model

// Student is the profile row for RoleStudent users.
type Student struct {
	UserID         int    `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	YearGroup      int    `gorm:"column:year_group;not null"`
	KeyStage       string `gorm:"column:key_stage;type:varchar(10);not null"`
	ProgressEmails bool   `gorm:"column:progress_emails;not null;default:false"`
	User           *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Student) TableName() string {
	return "students"
}

type Teacher struct {
	UserID  int    `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Title   string `gorm:"column:title;type:varchar(10);not null"`
	Surname string `gorm:"column:surname;type:varchar(100);not null"`
	Subject string `gorm:"column:subject;type:varchar(100);not null"`
	User    *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Teacher) TableName() string {
	return "teachers"
}

const (
	KeyStage3 = "KS3"
	GCSE      = "GCSE"
	ALevel    = "A-Level"
)

// KeyStageFor maps a UK year group to its stage. Unknown years map to "".
func KeyStageFor(yearGroup int) string {
	switch {
	case yearGroup >= 7 && yearGroup <= 9:
		return KeyStage3
	case yearGroup == 10 || yearGroup == 11:
		return GCSE
	case yearGroup == 12 || yearGroup == 13:
		return ALevel
	default:
		return ""
	}
}
