package models

import "errors"

// ==============================================
// PREDEFINED ERRORS
// ==============================================

// Validation errors
var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailAndOTPRequired  = errors.New("email and OTP are required")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
)

// User/Auth errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
)

// OTP errors
var (
	ErrOTPNotFound = errors.New("OTP not found or expired, please request a new one")
	ErrOTPExpired  = errors.New("OTP expired")
	ErrOTPInvalid  = errors.New("invalid OTP")
)

// Product errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidPrice     = errors.New("invalid product price")
)

// ==============================================
// HELPER FUNCTIONS
// ==============================================

// IsNotFoundError checks if error is a "not found" error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsValidationError checks if error is missing/malformed input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrEmailAndOTPRequired) ||
		errors.Is(err, ErrRefreshTokenRequired) ||
		errors.Is(err, ErrInvalidPrice)
}

// IsOTPError checks if error came from the OTP challenge cycle
func IsOTPError(err error) bool {
	return errors.Is(err, ErrOTPNotFound) ||
		errors.Is(err, ErrOTPExpired) ||
		errors.Is(err, ErrOTPInvalid)
}

// IsAuthError checks if error is authentication-related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired)
}
