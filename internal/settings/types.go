package settings

type SendEmailCodeRequest struct {
	Email string `json:"email" binding:"required" example:"new@example.com"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required" example:"new@example.com"`
	Code  string `json:"code" binding:"required" example:"123456"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type ProgressEmailsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type ProgressEmailsResponse struct {
	Enabled bool `json:"enabled"`
}
