package dto

import "github.com/ojamarket/backend/internal/models"

// ==============================================
// REQUEST DTOs
// ==============================================

// LoginRequest starts the unified login/signup flow
type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// VerifyRequest submits the OTP for the pending challenge
type VerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RefreshRequest exchanges a refresh token for a new access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ==============================================
// RESPONSE DTOs
// ==============================================

// LoginResponse acknowledges that an OTP was sent
type LoginResponse struct {
	Email   string `json:"email"`
	Message string `json:"-"`
}

// VerifyResponse is the sanitized user plus the freshly issued token pair
type VerifyResponse struct {
	User         *models.PublicUser `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	Message      string             `json:"-"`
}

// RefreshResponse carries only the new access token; the refresh token is
// not rotated by this operation
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}
