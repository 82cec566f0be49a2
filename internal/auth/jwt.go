package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ojamarket/backend/internal/models"
)

// AdminRefreshExpiry caps refresh-token lifetime for elevated roles.
// Admin sessions are deliberately shorter-lived than customer sessions.
const AdminRefreshExpiry = time.Hour

// Claims are the JWT claims carried by both token kinds. Only the user id
// and role go into a token; profile fields are deliberately excluded to keep
// token size bounded.
type Claims struct {
	UserID int    `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig holds the signing secrets and lifetimes for the codec.
// Access and refresh tokens are signed with distinct secrets so one kind can
// never be replayed as the other.
type TokenConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// TokenCodec issues and verifies access/refresh token pairs
type TokenCodec struct {
	cfg TokenConfig
}

func NewTokenCodec(cfg TokenConfig) *TokenCodec {
	return &TokenCodec{cfg: cfg}
}

// IssueAccessToken generates a short-lived access token for a user
func (c *TokenCodec) IssueAccessToken(userID int, role string) (string, error) {
	return c.sign(userID, role, c.cfg.AccessSecret, c.cfg.AccessTokenExpiry)
}

// IssueRefreshToken generates a refresh token with role-aware expiry:
// 1 hour for ADMIN/SUPERADMIN, the configured default for everyone else.
func (c *TokenCodec) IssueRefreshToken(userID int, role string) (string, error) {
	expiry := c.cfg.RefreshTokenExpiry
	if models.IsElevatedRole(role) {
		expiry = AdminRefreshExpiry
	}
	return c.sign(userID, role, c.cfg.RefreshSecret, expiry)
}

// VerifyAccessToken validates an access token and returns its claims
func (c *TokenCodec) VerifyAccessToken(tokenString string) (*Claims, error) {
	return c.verify(tokenString, c.cfg.AccessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its claims
func (c *TokenCodec) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return c.verify(tokenString, c.cfg.RefreshSecret)
}

func (c *TokenCodec) sign(userID int, role, secret string, expiry time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// verify parses a token and classifies failures: expiry maps to
// models.ErrTokenExpired, every other defect to models.ErrInvalidToken.
func (c *TokenCodec) verify(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrInvalidToken
	}

	if !token.Valid {
		return nil, models.ErrInvalidToken
	}

	return claims, nil
}
