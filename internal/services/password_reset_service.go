package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/utils"
	"stockroom/internal/validators"
)

var (
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidCode covers a wrong, expired or already used code alike.
	ErrInvalidCode = errors.New("code is invalid or expired")
)

const (
	CodeLength     = 6
	DefaultCodeTTL = 15 * time.Minute
)

type PasswordResetService interface {
	RequestReset(email string) error
	ValidateCode(email, code string) error
	ResetPassword(email, code, newPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	repo     repositories.PasswordResetRepository
	emails   EmailService
	auth     AuthService
	ttl      time.Duration
	now      func() time.Time
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	repo repositories.PasswordResetRepository,
	emails EmailService,
	auth AuthService,
	ttl time.Duration,
) PasswordResetService {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	return &passwordResetService{
		userRepo: userRepo,
		repo:     repo,
		emails:   emails,
		auth:     auth,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *passwordResetService) RequestReset(email string) error {
	email = normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidEmail
		}
		return err
	}

	code, err := utils.NewNumericCode(CodeLength)
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	now := s.now()
	pr := &models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(pr); err != nil {
		return err
	}
	zap.L().Info("Password reset code issued",
		zap.Int("user_id", user.ID),
		zap.Int("reset_id", pr.ID),
		zap.Time("expires_at", pr.ExpiresAt),
	)

	if s.emails != nil {
		if err := s.emails.SendPasswordResetCode(user.Email, code, s.ttl); err != nil {
			zap.L().Warn("Failed to send password reset email", zap.Int("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *passwordResetService) ValidateCode(email, code string) error {
	_, _, err := s.lookup(email, code)
	return err
}

func (s *passwordResetService) ResetPassword(email, code, newPassword string) error {
	user, pr, err := s.lookup(email, code)
	if err != nil {
		return err
	}
	if err := validators.PasswordValidator(newPassword); err != nil {
		return err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// the conditional update loses to a concurrent consumer of the same code
	ok, err := s.repo.ConsumeAndSetPassword(pr.ID, user.ID, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}

	zap.L().Info("Password reset completed", zap.Int("user_id", user.ID), zap.Int("reset_id", pr.ID))
	return nil
}

// lookup resolves the user and their most recent reset entry and checks the
// candidate code against it. Every failure collapses into ErrInvalidCode.
func (s *passwordResetService) lookup(email, code string) (*models.User, *models.PasswordReset, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, err
	}

	pr, err := s.repo.GetLatestByUser(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, err
	}

	if !pr.Valid(strings.TrimSpace(code), s.now()) {
		return nil, nil, ErrInvalidCode
	}
	return user, pr, nil
}
