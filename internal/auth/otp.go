package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// ==============================================
// OTP CONFIGURATION
// ==============================================

const (
	OTPLength = 6               // 6-digit OTP
	OTPExpiry = 5 * time.Minute // OTP expires 5 minutes after issuance
)

var otpMax = big.NewInt(1000000)

// ErrMalformedChallenge means the stored challenge slot could not be decoded
var ErrMalformedChallenge = errors.New("malformed OTP challenge")

// GenerateOTP generates a 6-digit OTP drawn uniformly from 000000-999999
// using a cryptographically secure source.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ==============================================
// CHALLENGE ENCODING
// ==============================================

// Challenge is one pending OTP challenge: the code and its absolute expiry.
// It is persisted as a single string "<code>:<expiry-epoch-millis>" in the
// user's challenge slot, so both fields travel together.
type Challenge struct {
	Code      string
	ExpiresAt time.Time
}

// NewChallenge builds a challenge expiring OTPExpiry from now
func NewChallenge(code string, now time.Time) Challenge {
	return Challenge{Code: code, ExpiresAt: now.Add(OTPExpiry)}
}

// Encode serializes the challenge to its storage form
func (c Challenge) Encode() string {
	return c.Code + ":" + strconv.FormatInt(c.ExpiresAt.UnixMilli(), 10)
}

// IsExpired reports whether the challenge is past its expiry at the given instant
func (c Challenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ParseChallenge decodes a stored challenge string
func ParseChallenge(value string) (Challenge, error) {
	code, millisStr, ok := strings.Cut(value, ":")
	if !ok || code == "" {
		return Challenge{}, ErrMalformedChallenge
	}

	millis, err := strconv.ParseInt(millisStr, 10, 64)
	if err != nil {
		return Challenge{}, ErrMalformedChallenge
	}

	return Challenge{Code: code, ExpiresAt: time.UnixMilli(millis)}, nil
}
