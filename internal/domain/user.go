package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRepository define o contrato de persistência para a entidade User.
// FindByEmail retorna found=false quando o email não existe: ausência
// não é erro. O retorno de erro cobre apenas falhas reais de infraestrutura.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (user User, found bool, err error)
}

// UserService define o contrato de lógica de negócio para a entidade User
// (o diretório de usuários: registro e busca por email).
type UserService interface {
	Register(ctx context.Context, registration UserRegistration) (User, error)
	FindByEmail(ctx context.Context, email string) (user User, found bool, err error)
}

// AuthService define o contrato do fluxo de autenticação.
// Login retorna o token de acesso em caso de sucesso.
type AuthService interface {
	Login(ctx context.Context, email string, password string) (string, error)
}
