package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/database"
	"goshop/internal/pkg/logger"
)

// UserRepository implementa a interface domain.UserRepository
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const insertUserSQL = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6)`

// Save insere um novo usuário no banco de dados.
// O ID (uuid) e os timestamps são atribuídos aqui, na camada de persistência.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 2. Prepara dados e ID
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	// 3. Executa o INSERT
	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertUserSQL,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// A UNIQUE constraint de users.email é a garantia autoritativa de
		// unicidade: se duas inscrições concorrentes passarem pela checagem
		// do Serviço, uma delas falha aqui com 23505.
		if database.IsUniqueViolation(err) {
			r.logger.Debug("Violação de unicidade ao inserir usuário.", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewConflictError("O email já está em uso.")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

const findUserByEmailSQL = `SELECT id, name, email, password_hash, created_at, updated_at
                            FROM users WHERE email = $1`

// FindByEmail busca um usuário pelo endereço de e-mail.
// Ausência não é erro: retorna found=false quando o email não existe.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	r.logger.Debug("Iniciando FindByEmail de usuário no repositório.", map[string]interface{}{"email": email})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 2. Executa a busca
	row := r.DB.QueryRowContext(ctxTimeout, findUserByEmailSQL, email)

	var user domain.User

	// 3. Mapeia o resultado para a struct User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("Usuário não encontrado no DB por email.", map[string]interface{}{"email": email})
			return domain.User{}, false, nil
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, false, apperror.NewDBError(fmt.Sprintf("failed to find user by email '%s'", email), err)
	}

	return user, true, nil
}
