package class

type CreateClassRequest struct {
	Name      string `json:"name" binding:"required" example:"10C1"`
	Subject   string `json:"subject" binding:"required" example:"Chemistry"`
	YearGroup int    `json:"year_group" example:"10"`
}

type JoinClassRequest struct {
	JoinCode string `json:"join_code" binding:"required" example:"K7MQ2XRP"`
}

// Summary is one class as listed for teachers and students. JoinCode and
// Members are only filled for the owning teacher.
type Summary struct {
	ID          int    `json:"class_id" gorm:"column:class_id"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	YearGroup   int    `json:"year_group"`
	JoinCode    string `json:"join_code,omitempty"`
	Members     int    `json:"members,omitempty"`
	TeacherName string `json:"teacher,omitempty" gorm:"column:teacher_name"`
}
