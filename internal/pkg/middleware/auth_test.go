package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goshop/internal/pkg/middleware"
	"goshop/internal/pkg/token"
)

// TestAuthMiddleware_ValidToken testa que um Bearer token válido libera a
// requisição e anexa o email (subject) ao contexto.
func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokenSvc := token.NewService("segredo-de-teste", 24*time.Hour)
	requireAuth := middleware.NewAuthMiddleware(tokenSvc)

	var gotEmail string
	handler := requireAuth(func(w http.ResponseWriter, r *http.Request) {
		email, ok := middleware.GetUserEmailFromContext(r.Context())
		assert.True(t, ok)
		gotEmail = email
		w.WriteHeader(http.StatusOK)
	})

	tokenString, err := tokenSvc.GenerateToken("ana@mail.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@mail.com", gotEmail)
}

// TestAuthMiddleware_MissingHeader testa que a ausência do header gera 401
// sem invocar o handler protegido.
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokenSvc := token.NewService("segredo-de-teste", 24*time.Hour)
	requireAuth := middleware.NewAuthMiddleware(tokenSvc)

	called := false
	handler := requireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// TestAuthMiddleware_InvalidToken testa que um token adulterado/expirado gera 401.
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := token.NewService("segredo-de-teste", 24*time.Hour)
	otherSvc := token.NewService("outro-segredo", 24*time.Hour)
	requireAuth := middleware.NewAuthMiddleware(tokenSvc)

	called := false
	handler := requireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	tokenString, err := otherSvc.GenerateToken("ana@mail.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
