package service

import (
	"fmt"
	"net/smtp"
	"strings"
)

// ==============================================
// EMAIL SERVICE
// ==============================================

// SMTPConfig holds the outbound mail transport settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	AppName   string
}

// EmailService sends transactional mail over SMTP. Delivery is
// fire-and-forget from the caller's point of view: one recipient, one body.
type EmailService struct {
	cfg SMTPConfig
}

func NewEmailService(cfg SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendOTP sends the one-time passcode for the pending challenge
func (s *EmailService) SendOTP(toEmail, code string) error {
	subject := fmt.Sprintf("Your OTP for %s", s.cfg.AppName)
	body := fmt.Sprintf("Your OTP is %s. It will expire in 5 minutes.", code)

	return s.send(toEmail, subject, body)
}

// send performs the SMTP handshake and delivery. Headers use CRLF line
// endings per RFC 822.
func (s *EmailService) send(toEmail, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	headers := []string{
		fmt.Sprintf("From: %s", s.cfg.FromEmail),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}

	message := strings.Join(headers, "\r\n")

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	return nil
}
