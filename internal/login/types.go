package login

import "pack/internal/model"

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"Password1"`
}

// LoginResponse is returned in data on success. The token travels only in
// the cookie.
type LoginResponse struct {
	User        *model.Identity `json:"user"`
	RedirectUrl string          `json:"redirect_url" example:"/dashboard/student"`
}
