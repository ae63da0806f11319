package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
	"storefront/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email already registered")

// UserService handles user auth logic.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// ValidateCredentials checks email and password; returns user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new customer with hashed password.
func (s *UserService) Register(ctx context.Context, email, name, password string) (dom.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil {
		return dom.User{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if name == "" {
		return dom.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return dom.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         dom.RoleCustomer,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	return u, mapRepoErr(err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
