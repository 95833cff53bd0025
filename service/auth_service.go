package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"reliefsupply/models"
	"reliefsupply/repository"

	"github.com/sirupsen/logrus"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Photo    string `json:"photo,omitempty"`
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Issuer signs identity tokens.
type Issuer interface {
	Issue(email, name, photo string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users  repository.UserRepository
	hasher Hasher
	issuer Issuer
	log    logrus.FieldLogger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.UserRepository, hasher Hasher, issuer Issuer, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		log:    log,
	}
}

// Register stores a new user with a hashed password.
// The existence check and the insert are separate store calls.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return ErrMissingCredentials
	}

	existing, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("check user existence: %w", err)
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	user := &models.AppUser{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Photo:    in.Photo,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("email", in.Email).Info("user registered")
	return nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	// Unknown emails are checked against a throwaway hash so both failures cost one compare.
	hash := s.unknownUserHash()
	if user != nil {
		hash = user.Password
	}
	if !s.hasher.Compare(hash, password) || user == nil {
		s.log.WithField("email", email).Warn("login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Email, user.Name, user.Photo)
	if err != nil {
		return "", err
	}
	return token, nil
}

// unknownUserHash is compared against when no account has the email.
func (s *AuthService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("reliefsupply-unknown-user")
		if err != nil {
			s.log.WithError(err).Error("failed to prepare unknown user hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
