// Package auth verifies credentials and issues the opaque bearer tokens the
// rest of the API trusts. The administrator is a distinct credential kind
// configured at deploy time, not a user row.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront-api/internal/domain"
	tokenrepo "storefront-api/internal/repository/token"
	userrepo "storefront-api/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the result of verifying a bearer credential. UserID is empty
// for administrator tokens.
type Identity struct {
	UserID string
	Role   domain.Role
}

type userRepo interface {
	Create(ctx context.Context, in userrepo.CreateInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Service handles registration, login and credential verification.
type Service struct {
	users         userRepo
	tokens        *tokenManager
	adminEmail    string
	adminPassword string
	accessTTL     time.Duration
	passwordMin   int
}

// New creates a Service with sane defaults. adminEmail/adminPassword are the
// configured administrator credentials; empty values disable admin login.
func New(users userrepo.Repository, tokens tokenrepo.Repository, adminEmail, adminPassword string) *Service {
	return &Service{
		users:         users,
		tokens:        newTokenManager(tokens),
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		accessTTL:     48 * time.Hour,
		passwordMin:   8,
	}
}

// Register creates a user and returns a fresh access token.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return "", fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: valid email required", domain.ErrInvalidInput)
	}
	if len(password) < s.passwordMin {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.passwordMin)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, userrepo.CreateInput{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(ctx, &user.ID, domain.RoleUser, s.accessTTL)
}

// Login verifies a user's email/password and returns an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, &user.ID, domain.RoleUser, s.accessTTL)
}

// AdminLogin verifies the configured administrator credentials and returns
// an admin-role token carrying no user identity.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (string, error) {
	if s.adminEmail == "" || s.adminPassword == "" {
		return "", ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, nil, domain.RoleAdmin, s.accessTTL)
}

// VerifyCredential resolves a bearer token to an identity.
func (s *Service) VerifyCredential(ctx context.Context, token string) (*Identity, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: meta.UserID, Role: meta.Role}, nil
}
