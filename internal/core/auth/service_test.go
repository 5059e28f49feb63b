package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/config"
)

type mockUserStore struct {
	users map[string]*User

	createErr error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*User)}
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return m.users[email], nil
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}
}

func TestRegister(t *testing.T) {
	store := newMockUserStore()
	service := NewService(store, testJWTConfig())

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Token == "" {
		t.Error("Register should issue a token")
	}
	if resp.User.PasswordHash == "password123" {
		t.Error("password must be stored hashed")
	}

	claims, err := service.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user id = %v, want %v", claims.UserID, resp.User.ID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("token email = %q", claims.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newMockUserStore()
	service := NewService(store, testJWTConfig())

	req := &RegisterRequest{Email: "alice@example.com", Password: "password123", Name: "Alice"}
	if _, err := service.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := service.Register(context.Background(), req)
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register = %v, want ErrUserExists", err)
	}
}

func TestLogin(t *testing.T) {
	store := newMockUserStore()
	service := NewService(store, testJWTConfig())

	if _, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token == "" {
		t.Error("Login should issue a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newMockUserStore()
	service := NewService(store, testJWTConfig())

	if _, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	store := newMockUserStore()
	service := NewService(store, testJWTConfig())

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService(newMockUserStore(), testJWTConfig())

	if _, err := service.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should be rejected")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	store := newMockUserStore()
	service := NewService(store, testJWTConfig())

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	other := NewService(store, &config.JWTConfig{Secret: "different", ExpirationHours: 1})
	if _, err := other.ValidateToken(resp.Token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}
