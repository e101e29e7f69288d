package admin

import (
	"context"
	"errors"
	"strings"

	"venuebook/internal/domain"
	jwtsvc "venuebook/internal/pkg/jwt"
	"venuebook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type adminStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Create(ctx context.Context, u *domain.AdminUser) error
}

type Service struct {
	admins adminStore
	jwt    *jwtsvc.Service
}

func NewService(admins adminStore, jwt *jwtsvc.Service) *Service {
	return &Service{admins: admins, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(u.ID, u.Email)
}

// CreateAdmin hashes the password and stores a new admin account. Used by the
// seed command.
func (s *Service) CreateAdmin(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.AdminUser{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
