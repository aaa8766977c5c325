package services

import (
	"context"
	"errors"
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/internal/repository"
	"github.com/secsim/phishing-gateway/pkg/logger"
)

var (
	// ErrInvalidCredentials never distinguishes a missing user from a wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type AuthService struct {
	userRepo UserRepository
}

func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Verify performs the single password-hash check and stamps last_login.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		logger.Warn("failed stamping last_login", "user_id", user.ID, "error", err)
	}

	return user, nil
}
