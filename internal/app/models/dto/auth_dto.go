package dto

// RegisterRequest carries the fields for creating a user account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest carries a password change for the authenticated user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// TokenResponse is returned on successful login
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	RoleType string `json:"roleType"`
}
