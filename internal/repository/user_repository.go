package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ojamarket/backend/internal/models"
)

// ==============================================
// USER REPOSITORY
// ==============================================

// UserRepository persists identities. Each row carries a single OTP
// challenge slot (verification_token) and a single refresh token slot
// (refresh_token); every write overwrites the previous value.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password, role, is_verified,
	       verification_token, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsVerified,
		&user.VerificationToken,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// ==============================================
// CREATE USER
// ==============================================

// CreateUser creates a new unverified user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password, role, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.IsVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// ==============================================
// GET USER (Read Operations)
// ==============================================

// GetUserByEmail retrieves a user by email (the primary authentication lookup)
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ==============================================
// UPDATE USER
// ==============================================

// UpdateProfile patches name and role on an unverified user resuming signup
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, name, role string) error {
	query := `
		UPDATE users
		SET name = $1, role = $2, updated_at = now()
		WHERE id = $3
	`

	nameVal := pgtype.Text{String: name, Valid: name != ""}
	_, err := r.db.Exec(ctx, query, nameVal, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// MarkVerified flips the verification flag. The flip happens exactly once
// per account; VERIFIED is terminal.
func (r *UserRepository) MarkVerified(ctx context.Context, userID int) error {
	query := `
		UPDATE users
		SET is_verified = true, updated_at = now()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	return nil
}

// ==============================================
// REFRESH TOKEN SLOT
// ==============================================

// SetRefreshToken stores the current refresh token, overwriting any prior
// value (unconditional rotation)
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int, token string) error {
	query := `
		UPDATE users
		SET refresh_token = $1, updated_at = now()
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	return nil
}

// ClearRefreshToken revokes the stored refresh token
func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID int) error {
	query := `
		UPDATE users
		SET refresh_token = NULL, updated_at = now()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// ==============================================
// OTP CHALLENGE SLOT
// ==============================================

// SaveVerificationToken writes the encoded OTP challenge into the user's
// challenge slot, replacing any pending challenge
func (r *UserRepository) SaveVerificationToken(ctx context.Context, email, token string) error {
	query := `
		UPDATE users
		SET verification_token = $1, updated_at = now()
		WHERE email = $2
	`

	tag, err := r.db.Exec(ctx, query, token, email)
	if err != nil {
		return fmt.Errorf("failed to save verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// GetVerificationToken reads the current challenge slot. An empty string
// means no challenge is pending.
func (r *UserRepository) GetVerificationToken(ctx context.Context, email string) (string, error) {
	query := `SELECT verification_token FROM users WHERE email = $1`

	var token pgtype.Text
	err := r.db.QueryRow(ctx, query, email).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get verification token: %w", err)
	}

	if !token.Valid {
		return "", nil
	}
	return token.String, nil
}

// ClearVerificationToken consumes the pending challenge
func (r *UserRepository) ClearVerificationToken(ctx context.Context, email string) error {
	query := `
		UPDATE users
		SET verification_token = NULL, updated_at = now()
		WHERE email = $1
	`

	_, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to clear verification token: %w", err)
	}

	return nil
}
