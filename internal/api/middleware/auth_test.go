package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/config"
	"github.com/ledgerbase/ledgerbase/internal/core/auth"
)

type stubUserStore struct {
	byEmail map[string]*auth.User
}

func (s *stubUserStore) CreateUser(ctx context.Context, user *auth.User) error {
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.byEmail[email], nil
}

func (s *stubUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func setupAuthTest(t *testing.T) (*AuthMiddleware, string, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := auth.NewService(
		&stubUserStore{byEmail: make(map[string]*auth.User)},
		&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
	)

	resp, err := service.Register(context.Background(), &auth.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	return NewAuthMiddleware(service), resp.Token, resp.User.ID
}

func runMiddleware(m *AuthMiddleware, header string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/banks", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	m.Authenticate()(c)
	return w, c
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m, _, _ := setupAuthTest(t)

	w, c := runMiddleware(m, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !c.IsAborted() {
		t.Error("request should be aborted")
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	m, token, _ := setupAuthTest(t)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		w, _ := runMiddleware(m, header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m, _, _ := setupAuthTest(t)

	w, _ := runMiddleware(m, "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m, token, userID := setupAuthTest(t)

	w, c := runMiddleware(m, "Bearer "+token)
	if c.IsAborted() {
		t.Fatalf("request aborted with status %d", w.Code)
	}

	got, ok := GetUserID(c)
	if !ok {
		t.Fatal("user id missing from context")
	}
	if got != userID {
		t.Errorf("user id = %v, want %v", got, userID)
	}
}

func TestGetUserID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := GetUserID(c); ok {
		t.Error("GetUserID on an empty context should report absence")
	}
}
