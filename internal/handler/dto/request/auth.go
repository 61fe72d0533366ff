package request

import (
	"coachdesk/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

// RefreshRequest body is optional; the refresh cookie is used when it is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
