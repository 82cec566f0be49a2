package service

import (
	"context"
	"errors"

	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// MOCK USER REPOSITORY
// ==============================================

type MockUserRepository struct {
	CreateUserFunc             func(ctx context.Context, user *models.User) error
	GetUserByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	GetUserByIDFunc            func(ctx context.Context, userID int) (*models.User, error)
	UpdateProfileFunc          func(ctx context.Context, userID int, name, role string) error
	MarkVerifiedFunc           func(ctx context.Context, userID int) error
	SetRefreshTokenFunc        func(ctx context.Context, userID int, token string) error
	ClearRefreshTokenFunc      func(ctx context.Context, userID int) error
	SaveVerificationTokenFunc  func(ctx context.Context, email, token string) error
	GetVerificationTokenFunc   func(ctx context.Context, email string) (string, error)
	ClearVerificationTokenFunc func(ctx context.Context, email string) error
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, models.ErrUserNotFound
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, userID)
	}
	return nil, models.ErrUserNotFound
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID int, name, role string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, name, role)
	}
	return nil
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, userID int) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, userID int, token string) error {
	if m.SetRefreshTokenFunc != nil {
		return m.SetRefreshTokenFunc(ctx, userID, token)
	}
	return nil
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID int) error {
	if m.ClearRefreshTokenFunc != nil {
		return m.ClearRefreshTokenFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) SaveVerificationToken(ctx context.Context, email, token string) error {
	if m.SaveVerificationTokenFunc != nil {
		return m.SaveVerificationTokenFunc(ctx, email, token)
	}
	return nil
}

func (m *MockUserRepository) GetVerificationToken(ctx context.Context, email string) (string, error) {
	if m.GetVerificationTokenFunc != nil {
		return m.GetVerificationTokenFunc(ctx, email)
	}
	return "", nil
}

func (m *MockUserRepository) ClearVerificationToken(ctx context.Context, email string) error {
	if m.ClearVerificationTokenFunc != nil {
		return m.ClearVerificationTokenFunc(ctx, email)
	}
	return nil
}

// ==============================================
// MOCK EMAIL SENDER
// ==============================================

type sentMail struct {
	To   string
	Code string
}

type MockEmailSender struct {
	SendOTPFunc func(toEmail, code string) error
	Sent        []sentMail
}

func (m *MockEmailSender) SendOTP(toEmail, code string) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(toEmail, code)
	}
	m.Sent = append(m.Sent, sentMail{To: toEmail, Code: code})
	return nil
}

// ==============================================
// IN-MEMORY CHALLENGE SLOT
// ==============================================

// challengeSlot wires the mock repository's verification-token methods to a
// single in-memory value, mimicking the one-slot-per-identity column
type challengeSlot struct {
	value string
	saves int
}

func (s *challengeSlot) install(repo *MockUserRepository) {
	repo.SaveVerificationTokenFunc = func(ctx context.Context, email, token string) error {
		s.value = token
		s.saves++
		return nil
	}
	repo.GetVerificationTokenFunc = func(ctx context.Context, email string) (string, error) {
		return s.value, nil
	}
	repo.ClearVerificationTokenFunc = func(ctx context.Context, email string) error {
		s.value = ""
		return nil
	}
}

var errBoom = errors.New("boom")
