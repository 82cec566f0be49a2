package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ojamarket/backend/internal/auth"
	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// COLLABORATOR INTERFACES (for testing)
// ==============================================

// UserRepositoryInterface is the narrow persistence contract the auth core
// needs: identity lookup/create/update plus the two single-value slots
// (OTP challenge, refresh token).
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, name, role string) error
	MarkVerified(ctx context.Context, userID int) error
	SetRefreshToken(ctx context.Context, userID int, token string) error
	ClearRefreshToken(ctx context.Context, userID int) error
	SaveVerificationToken(ctx context.Context, email, token string) error
	GetVerificationToken(ctx context.Context, email string) (string, error)
	ClearVerificationToken(ctx context.Context, email string) error
}

// EmailSender is the outbound mail collaborator
type EmailSender interface {
	SendOTP(toEmail, code string) error
}

// ==============================================
// OTP SERVICE
// ==============================================

// OtpService manages the single-slot OTP challenge per identity
type OtpService struct {
	userRepo UserRepositoryInterface
	email    EmailSender
}

func NewOtpService(userRepo UserRepositoryInterface, email EmailSender) *OtpService {
	return &OtpService{
		userRepo: userRepo,
		email:    email,
	}
}

// SendOTP issues a fresh challenge for the email: generates a 6-digit code,
// stores "<code>:<expiry-epoch-millis>" in the user's challenge slot
// (overwriting any pending challenge), and mails the code. Returns the
// plaintext code.
func (s *OtpService) SendOTP(ctx context.Context, email string) (string, error) {
	code, err := auth.GenerateOTP()
	if err != nil {
		return "", err
	}

	challenge := auth.NewChallenge(code, time.Now())

	if err := s.userRepo.SaveVerificationToken(ctx, email, challenge.Encode()); err != nil {
		return "", fmt.Errorf("failed to save OTP challenge: %w", err)
	}

	if err := s.email.SendOTP(email, code); err != nil {
		return "", fmt.Errorf("failed to send OTP email: %w", err)
	}

	return code, nil
}

// VerifyOTP checks a submitted code against the pending challenge:
//   - no pending challenge (or an undecodable slot): ErrOTPNotFound
//   - past expiry: the slot is cleared, then ErrOTPExpired
//   - wrong code before expiry: ErrOTPInvalid, slot left intact so the same
//     challenge stays guessable until it expires
//   - match before expiry: the slot is cleared (consumed) and verification
//     succeeds
func (s *OtpService) VerifyOTP(ctx context.Context, email, submitted string) error {
	stored, err := s.userRepo.GetVerificationToken(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to read OTP challenge: %w", err)
	}
	if stored == "" {
		return models.ErrOTPNotFound
	}

	challenge, err := auth.ParseChallenge(stored)
	if err != nil {
		if errors.Is(err, auth.ErrMalformedChallenge) {
			return models.ErrOTPNotFound
		}
		return err
	}

	if challenge.IsExpired(time.Now()) {
		if err := s.userRepo.ClearVerificationToken(ctx, email); err != nil {
			return fmt.Errorf("failed to clear expired OTP challenge: %w", err)
		}
		return models.ErrOTPExpired
	}

	if challenge.Code != submitted {
		return models.ErrOTPInvalid
	}

	if err := s.userRepo.ClearVerificationToken(ctx, email); err != nil {
		return fmt.Errorf("failed to consume OTP challenge: %w", err)
	}

	return nil
}
