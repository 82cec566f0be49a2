package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PlaceholderPassword hashes the user's email to fill the mandatory password
// column. Login is OTP-only, so no real credential ever exists; the
// placeholder just satisfies the schema and is never checked.
func PlaceholderPassword(email string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(email), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
