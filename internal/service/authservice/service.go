package authservice

import (
	"context"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/hash"
	"goshop/internal/pkg/logger"
)

// TokenIssuer é o contrato de emissão de tokens (internal/pkg/token).
type TokenIssuer interface {
	GenerateToken(email string) (string, error)
}

// AuthService implementa o fluxo de autenticação: busca no diretório de
// usuários, verificação da senha e emissão do JWT. Depende do diretório;
// o diretório nunca depende de volta (sem ciclo).
type AuthService struct {
	Users    domain.UserService
	Hasher   hash.PasswordHasher
	TokenSvc TokenIssuer
	logger   logger.Logger
}

// NewService cria uma nova instância do AuthService, injetando as dependências.
func NewService(users domain.UserService, hasher hash.PasswordHasher, tokenSvc TokenIssuer, logger logger.Logger) *AuthService {
	return &AuthService{
		Users:    users,
		Hasher:   hasher,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Login autentica um usuário e retorna um token de acesso.
// Pipeline sequencial: buscar usuário → comparar senha → emitir token.
// "Usuário inexistente" e "senha incorreta" retornam o MESMO erro 401,
// para não revelar a existência da conta a um atacante.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	// 1. Validação Básica
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 2. Buscar Usuário pelo Email
	user, found, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		// Falha de infraestrutura (ou email sintaticamente inválido) propaga como está
		return "", err
	}
	if !found {
		s.logger.Debug("Login com email desconhecido.", map[string]interface{}{"email": email})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 3. Comparar Senhas (Hashing)
	if !s.Hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug("Login com senha incorreta.", map[string]interface{}{"email": email})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Gerar JWT (subject = email do usuário autenticado)
	tokenString, err := s.TokenSvc.GenerateToken(user.Email)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"email": email})
	return tokenString, nil
}
