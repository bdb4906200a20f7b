package services

import (
	"errors"
	"strings"

	"rewear/internal/domain"
	"rewear/internal/repos"
	"rewear/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
	ErrInactive   = errors.New("account disabled")
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *token.Manager
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if !u.IsActive {
		return nil, "", ErrInactive
	}
	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) Register(email, fullName, password string) (*domain.User, string, error) {
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}
	u := domain.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		FullName: fullName,
		Hash:     string(h),
		Role:     domain.RoleUser,
		IsActive: true,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, "", err
	}
	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return &u, tok, nil
}

// UserFromToken resolves a bearer token to its live user row.
func (s *AuthService) UserFromToken(raw string) (*domain.User, error) {
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.ByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactive
	}
	return u, nil
}
