package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ojamarket/backend/internal/api/dto"
	"github.com/ojamarket/backend/internal/auth"
	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// SERVICE INTERFACE (for testing)
// ==============================================

type AuthService interface {
	StartLoginOrSignup(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyAndComplete(ctx context.Context, email, otp string) (*dto.VerifyResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, userID int) error
	GetCurrentUser(ctx context.Context, userID int) (*models.PublicUser, error)
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type AuthHandler struct {
	service AuthService
	codec   *auth.TokenCodec
}

func NewAuthHandler(service AuthService, codec *auth.TokenCodec) *AuthHandler {
	return &AuthHandler{service: service, codec: codec}
}

// ==============================================
// ENDPOINTS
// ==============================================

// Login handles POST /api/auth/login - starts login or signup, sends an OTP
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.StartLoginOrSignup(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, gin.H{"email": resp.Email}, resp.Message)
}

// Verify handles POST /api/auth/verify - consumes the OTP and returns tokens
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.OTP == "" {
		respondError(c, http.StatusBadRequest, models.ErrEmailAndOTPRequired.Error())
		return
	}

	resp, err := h.service.VerifyAndComplete(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, resp, resp.Message)
}

// Refresh handles POST /api/auth/refresh - issues a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, resp, "Access token refreshed successfully")
}

// Logout handles POST /api/auth/logout - revokes the stored refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, models.ErrNotAuthenticated.Error())
		return
	}

	if err := h.service.Logout(c.Request.Context(), user.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, nil, "Logged out successfully")
}

// Me handles GET /api/auth/me - returns the sanitized current user
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, models.ErrNotAuthenticated.Error())
		return
	}

	resp, err := h.service.GetCurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, resp, "User info retrieved successfully")
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/verify", h.Verify)
		authGroup.POST("/refresh", h.Refresh)

		protected := authGroup.Group("")
		protected.Use(RequireAuth(h.codec))
		{
			protected.POST("/logout", h.Logout)
			protected.GET("/me", h.Me)
		}
	}
}

// ==============================================
// HELPER FUNCTIONS
// ==============================================

// respondSuccess sends a 200 response in the standard envelope
func respondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, data, message))
}

// respondError sends an error response in the standard envelope
func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewAPIResponse(statusCode, nil, message))
}

// respondServiceError maps domain errors to HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	statusCode, message := mapServiceError(err)
	respondError(c, statusCode, message)
}

// mapServiceError converts the domain error taxonomy to HTTP statuses.
// Unrecognized errors become a generic 500 so internal detail never leaks.
func mapServiceError(err error) (int, string) {
	switch {
	// Validation and OTP errors (400 Bad Request)
	case models.IsValidationError(err), models.IsOTPError(err):
		return http.StatusBadRequest, err.Error()

	// Not found errors (404 Not Found)
	case models.IsNotFoundError(err):
		return http.StatusNotFound, err.Error()

	// Token errors (401 Unauthorized)
	case errors.Is(err, models.ErrTokenExpired):
		return http.StatusUnauthorized, "Refresh token expired. Please login again"
	case errors.Is(err, models.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid refresh token"
	case errors.Is(err, models.ErrNotAuthenticated):
		return http.StatusUnauthorized, err.Error()

	// Default (500 Internal Server Error)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
