package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront-api/internal/domain"
	tokenrepo "storefront-api/internal/repository/token"
	userrepo "storefront-api/internal/repository/user"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
	seq     int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, in userrepo.CreateInput) (*domain.User, error) {
	if _, ok := m.byEmail[in.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	m.seq++
	u := &domain.User{
		ID:           "u" + string(rune('0'+m.seq)),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		Cart:         domain.CartData{},
	}
	m.byEmail[in.Email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetCart(context.Context, string) (domain.CartData, error) { return nil, nil }
func (m *memUserRepo) MutateCart(_ context.Context, _ string, _ func(domain.CartData) (domain.CartData, error)) (domain.CartData, error) {
	return nil, nil
}
func (m *memUserRepo) ClearCart(context.Context, string) error { return nil }

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

func newTestService() (*Service, *memUserRepo, *memTokenRepo) {
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	return New(users, tokens, "admin@example.com", "s3cretpass"), users, tokens
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	cases := []struct {
		name, email, password string
	}{
		{"", "a@example.com", "longenough"},
		{"Ada", "not-an-email", "longenough"},
		{"Ada", "a@example.com", "short"},
	}
	for _, c := range cases {
		_, err := svc.Register(context.Background(), c.name, c.email, c.password)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", c, err)
		}
	}
}

func TestRegisterAndVerify(t *testing.T) {
	svc, users, _ := newTestService()
	token, err := svc.Register(context.Background(), "Ada", "Ada@Example.com", "longenough")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if _, ok := users.byEmail["ada@example.com"]; !ok {
		t.Fatalf("expected email normalized, got %+v", users.byEmail)
	}

	ident, err := svc.VerifyCredential(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ident.Role != domain.RoleUser || ident.UserID == "" {
		t.Fatalf("unexpected identity %+v", ident)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Register(context.Background(), "Ada", "a@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Ada2", "a@example.com", "longenough")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	users.byEmail["a@example.com"] = &domain.User{ID: "u1", Email: "a@example.com", PasswordHash: string(hash), Role: domain.RoleUser}

	if _, err := svc.Login(context.Background(), "a@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "missing@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
	token, err := svc.Login(context.Background(), "a@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	ident, err := svc.VerifyCredential(context.Background(), token)
	if err != nil || ident.UserID != "u1" {
		t.Fatalf("unexpected identity %+v err=%v", ident, err)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.AdminLogin(context.Background(), "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	token, err := svc.AdminLogin(context.Background(), "admin@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	ident, err := svc.VerifyCredential(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ident.Role != domain.RoleAdmin || ident.UserID != "" {
		t.Fatalf("unexpected identity %+v", ident)
	}
}

func TestAdminLoginDisabledWithoutConfig(t *testing.T) {
	svc := New(newMemUserRepo(), newMemTokenRepo(), "", "")
	if _, err := svc.AdminLogin(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestVerifyCredentialExpiredToken(t *testing.T) {
	svc, _, tokens := newTestService()
	userID := "u1"
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    &userID,
		Role:      string(domain.RoleUser),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if _, err := svc.VerifyCredential(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatalf("expected expired token deleted")
	}
}
