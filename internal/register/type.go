package register

import "pack/internal/model"

// SignupRequest is the body of POST /api/signup. Student and teacher fields
// are read according to Role.
type SignupRequest struct {
	Username  string     `json:"username" example:"alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	Password  string     `json:"password" example:"Password1"`
	FirstName string     `json:"first_name" example:"Alice"`
	Role      model.Role `json:"role" example:"Student" enums:"Student,Teacher"`

	// Student
	YearGroup      int  `json:"year_group,omitempty" example:"10"`
	ProgressEmails bool `json:"progress_emails,omitempty"`

	// Teacher
	Title   string   `json:"title,omitempty" example:"Ms"`
	Surname string   `json:"surname,omitempty" example:"Khan"`
	Subject string   `json:"subject,omitempty" example:"Chemistry"`
	Classes []string `json:"classes,omitempty" example:"10C1,11C2"`
}

type SignupResponse struct {
	User        *model.Identity `json:"user"`
	RedirectUrl string          `json:"redirect_url" example:"/dashboard/student"`
}
