package userservice

import (
	"context"
	"strings"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/hash"
	"goshop/internal/pkg/logger"
)

// UserService implementa o diretório de usuários: registro com unicidade de
// email e busca por email. É a única dona da criação de registros User.
type UserService struct {
	UserRepo domain.UserRepository
	Hasher   hash.PasswordHasher
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório e o Hasher.
func NewService(repo domain.UserRepository, hasher hash.PasswordHasher, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Hasher:   hasher,
		logger:   logger,
	}
}

// Register registra um novo usuário no sistema.
// Fluxo: valida entrada → rejeita email duplicado → hasheia a senha → persiste.
// O User retornado tem PasswordHash zerado: o hash salvo nunca vaza para o chamador.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação Básica
	if registration.Email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	// 2. Checagem de unicidade (caminho rápido; a UNIQUE constraint do DB
	// é a garantia autoritativa contra registros concorrentes)
	_, found, err := s.FindByEmail(ctx, registration.Email)
	if err != nil {
		return domain.User{}, err
	}
	if found {
		s.logger.Debug("Tentativa de registro com email duplicado.", map[string]interface{}{"email": registration.Email})
		return domain.User{}, apperror.NewConflictError("O email já está em uso.")
	}

	// 3. Hashing da Senha
	hashedPassword, err := s.Hasher.Hash(registration.Password)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 4. Criação do Objeto User e Persistência
	newUser := domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: hashedPassword,
	}

	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		return domain.User{}, err
	}

	// 5. Limpa o hash antes de devolver ao chamador (a tag json:"-" já o
	// ocultaria na serialização; zerar o campo é a garantia no nível do domínio)
	user.PasswordHash = ""

	s.logger.Info("Usuário registrado com sucesso.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo email.
// Guarda sintática barata: email sem "@" é rejeitado com ValidationError antes
// de qualquer consulta ao banco (não é validação RFC completa).
// Ausência não é erro: retorna found=false. O User retornado inclui o
// PasswordHash, para uso interno do fluxo de autenticação.
func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	if !strings.Contains(email, "@") {
		return domain.User{}, false, apperror.NewValidationError("Email inválido.")
	}

	return s.UserRepo.FindByEmail(ctx, email)
}
