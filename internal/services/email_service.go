package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendPasswordResetCode(email, code string, ttl time.Duration) error
}

type emailService struct {
	dialer   *gomail.Dialer
	from     string
	suppress bool
}

// NewEmailService builds the SMTP sender. With suppress set, messages are
// composed but only logged.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, suppress bool) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:   dialer,
		from:     fromEmail,
		suppress: suppress,
	}
}

func (s *emailService) SendPasswordResetCode(email, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your password reset code")

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Your reset code is: <strong>%s</strong></p>
		<p>The code expires in %s and can be used once.</p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, code, ttl.Round(time.Minute))
	m.SetBody("text/html", body)

	if s.suppress {
		zap.L().Debug("Mail delivery suppressed", zap.String("to", email), zap.String("subject", "Your password reset code"))
		return nil
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
