package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ojamarket/backend/internal/api/dto"
	"github.com/ojamarket/backend/internal/auth"
	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// AUTH SERVICE
// ==============================================

// AuthService is the session orchestrator: it decides whether an incoming
// email starts a login, a signup, or a resumed verification; finalizes OTP
// verification; and issues, rotates, and revokes the token pair.
type AuthService struct {
	userRepo UserRepositoryInterface
	otp      *OtpService
	codec    *auth.TokenCodec
}

func NewAuthService(userRepo UserRepositoryInterface, otp *OtpService, codec *auth.TokenCodec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otp:      otp,
		codec:    codec,
	}
}

// ==============================================
// START LOGIN / SIGNUP
// ==============================================

// StartLoginOrSignup is the unified entry point. Unknown email: create an
// unverified user and send a verification OTP. Known and verified: send a
// login OTP. Known but unverified: patch name/role if newly supplied and
// resend the verification OTP. Exactly one challenge and one email per call.
func (s *AuthService) StartLoginOrSignup(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" {
		return nil, models.ErrEmailRequired
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var message string

	switch {
	case user == nil:
		// The schema requires a password column even though login is
		// OTP-only; store a placeholder hash of the email.
		placeholder, err := auth.PlaceholderPassword(req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to build placeholder password: %w", err)
		}

		newUser := &models.User{
			Name:       pgtype.Text{String: req.Name, Valid: req.Name != ""},
			Email:      req.Email,
			Password:   placeholder,
			Role:       role,
			IsVerified: false,
		}
		if err := s.userRepo.CreateUser(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		message = fmt.Sprintf("New user record created. Verification OTP sent to %s.", req.Email)

	case user.IsVerified:
		message = fmt.Sprintf("Login OTP sent to your email %s", req.Email)

	default:
		// Resume-signup correction path: only overwrite fields the caller
		// actually supplied.
		name := req.Name
		if name == "" && user.Name.Valid {
			name = user.Name.String
		}
		patchRole := user.Role
		if req.Role != "" {
			patchRole = req.Role
		}
		if err := s.userRepo.UpdateProfile(ctx, user.ID, name, patchRole); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

		message = fmt.Sprintf("Verification OTP resent to your email %s. Please complete sign-up.", req.Email)
	}

	if _, err := s.otp.SendOTP(ctx, req.Email); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Email: req.Email, Message: message}, nil
}

// ==============================================
// VERIFY AND COMPLETE
// ==============================================

// VerifyAndComplete consumes the pending OTP challenge and finishes the
// login or signup: an unverified user is flipped to verified exactly once,
// a fresh token pair is issued with minimal {id, role} claims, and the new
// refresh token unconditionally replaces the stored one.
func (s *AuthService) VerifyAndComplete(ctx context.Context, email, otp string) (*dto.VerifyResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.otp.VerifyOTP(ctx, email, otp); err != nil {
		return nil, err
	}

	firstLogin := !user.IsVerified
	if firstLogin {
		if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to mark user verified: %w", err)
		}
		user.IsVerified = true
	}

	accessToken, err := s.codec.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.codec.IssueRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	message := "Logged in successfully"
	if firstLogin {
		message = "User verified and logged in successfully"
	}

	return &dto.VerifyResponse{
		User:         user.ToPublic(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Message:      message,
	}, nil
}

// ==============================================
// REFRESH ACCESS TOKEN
// ==============================================

// RefreshAccessToken exchanges a valid refresh token for a new access token.
// The owning identity is resolved by the id claim (ids are stable, emails
// can change) and the presented token must equal the stored one, which
// catches logout, rotation elsewhere, and reuse after revocation. The
// refresh token itself is not rotated here.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	if refreshToken == "" {
		return nil, models.ErrRefreshTokenRequired
	}

	claims, err := s.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasRefreshToken() || user.RefreshToken.String != refreshToken {
		return nil, models.ErrInvalidToken
	}

	accessToken, err := s.codec.IssueAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &dto.RefreshResponse{AccessToken: accessToken}, nil
}

// ==============================================
// LOGOUT
// ==============================================

// Logout clears the stored refresh token, invalidating future refresh
// attempts immediately regardless of the token's stated expiry
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// ==============================================
// CURRENT USER
// ==============================================

// GetCurrentUser returns the sanitized identity projection, no tokens attached
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int) (*models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user.ToPublic(), nil
}
