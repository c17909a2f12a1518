package services

import (
	"errors"

	"go.uber.org/zap"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/validators"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService interface {
	Register(email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Register(email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := validators.EmailValidator(email); err != nil {
		return nil, err
	}
	if err := validators.PasswordValidator(password); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	zap.L().Info("User registered", zap.Int("user_id", user.ID))
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}
