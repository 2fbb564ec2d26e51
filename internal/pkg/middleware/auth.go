package middleware

import (
	"context"
	"net/http"
	"strings"

	apperror "goshop/internal/errors"
	"goshop/internal/pkg/token"
)

// ContextKey é o tipo das chaves usadas para anexar dados da requisição ao
// contexto. Usamos um tipo próprio para garantir que a chave seja única e
// não haja conflito com chaves string de outros pacotes.
type ContextKey int

const (
	// UserEmailKey guarda o email (subject do JWT) do usuário autenticado.
	UserEmailKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria o middleware que exige um JWT válido antes de liberar
// o acesso às rotas protegidas (o "portão" das operações de produto).
// Em caso de sucesso, anexa o email do usuário ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado.").Error(), http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// 2. Validar o Token (assinatura + expiração)
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, apperror.NewUnauthorizedError("Token inválido ou expirado.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Anexar o subject (email) ao Contexto
			ctx := context.WithValue(r.Context(), UserEmailKey, claims.Subject)

			// Chama o próximo handler com o novo contexto
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserEmailFromContext é a função utilitária para extrair o email
// autenticado no handler. ok=false indica requisição não autenticada.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
