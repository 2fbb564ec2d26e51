package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/logger"
	"goshop/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Bool(1), args.Error(2)
}

// MockPasswordHasher é uma implementação mock da interface hash.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password string, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("fatal")
}

// --- Testes para Register ---

// TestRegister_Success testa o registro com email livre: o usuário é criado
// e o campo de senha retornado vem vazio.
func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	registration := domain.UserRegistration{Name: "Ana", Email: "ana@mail.com", Password: "pw123"}

	mockRepo.On("FindByEmail", mock.Anything, "ana@mail.com").Return(domain.User{}, false, nil)
	mockHasher.On("Hash", "pw123").Return("$2a$12$hash", nil)

	savedUser := domain.User{
		ID:           uuid.New().String(),
		Name:         "Ana",
		Email:        "ana@mail.com",
		PasswordHash: "$2a$12$hash",
	}
	mockRepo.On("Save", mock.Anything, domain.User{
		Name:         "Ana",
		Email:        "ana@mail.com",
		PasswordHash: "$2a$12$hash",
	}).Return(savedUser, nil)

	ctx := context.Background()
	user, err := svc.Register(ctx, registration)

	assert.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@mail.com", user.Email)
	assert.NotEqual(t, "", user.ID)
	// O hash salvo nunca vaza para o chamador
	assert.Equal(t, "", user.PasswordHash)
	mockRepo.AssertExpectations(t)
	mockHasher.AssertExpectations(t)
}

// TestRegister_Fail_DuplicateEmail testa que um email já registrado gera
// ConflictError, independente de nome e senha, sem chamar o Save do repositório.
func TestRegister_Fail_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	existing := domain.User{ID: uuid.New().String(), Email: "ana@mail.com"}
	mockRepo.On("FindByEmail", mock.Anything, "ana@mail.com").Return(existing, true, nil)

	ctx := context.Background()
	_, err := svc.Register(ctx, domain.UserRegistration{Name: "Outra", Email: "ana@mail.com", Password: "outra-senha"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), "já está em uso")
	mockRepo.AssertNotCalled(t, "Save")
	mockHasher.AssertNotCalled(t, "Hash")
}

// TestRegister_Fail_InvalidEmail testa que um email sem "@" é rejeitado com
// ValidationError antes de qualquer consulta ao repositório.
func TestRegister_Fail_InvalidEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	ctx := context.Background()
	_, err := svc.Register(ctx, domain.UserRegistration{Name: "Ana", Email: "ana.mail.com", Password: "pw123"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByEmail")
	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_Fail_MissingFields testa a validação de campos obrigatórios.
func TestRegister_Fail_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	ctx := context.Background()

	_, err := svc.Register(ctx, domain.UserRegistration{Name: "Ana", Email: "", Password: "pw123"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.Register(ctx, domain.UserRegistration{Name: "Ana", Email: "ana@mail.com", Password: ""})
	assert.IsType(t, &apperror.ValidationError{}, err)

	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_Fail_RepoError testa que falhas de infraestrutura no Save
// propagam sem reinterpretação.
func TestRegister_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	mockRepo.On("FindByEmail", mock.Anything, "ana@mail.com").Return(domain.User{}, false, nil)
	mockHasher.On("Hash", "pw123").Return("$2a$12$hash", nil)

	repoError := apperror.NewDBError("failed to insert user", errors.New("connection lost"))
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, repoError)

	ctx := context.Background()
	_, err := svc.Register(ctx, domain.UserRegistration{Name: "Ana", Email: "ana@mail.com", Password: "pw123"})

	assert.Error(t, err)
	assert.Equal(t, repoError, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para FindByEmail ---

// TestFindByEmail_Fail_InvalidEmail testa a guarda sintática: email sem "@"
// falha com ValidationError e o repositório nunca é consultado.
func TestFindByEmail_Fail_InvalidEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	ctx := context.Background()
	_, found, err := svc.FindByEmail(ctx, "sem-arroba")

	assert.Error(t, err)
	assert.False(t, found)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByEmail")
}

// TestFindByEmail_Absent testa que ausência é sinalizada com found=false, sem erro.
func TestFindByEmail_Absent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	mockRepo.On("FindByEmail", mock.Anything, "ninguem@mail.com").Return(domain.User{}, false, nil)

	ctx := context.Background()
	_, found, err := svc.FindByEmail(ctx, "ninguem@mail.com")

	assert.NoError(t, err)
	assert.False(t, found)
	mockRepo.AssertExpectations(t)
}

// TestFindByEmail_Success testa que a busca interna devolve o usuário completo
// (incluindo o hash, para uso do fluxo de autenticação).
func TestFindByEmail_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)
	svc := userservice.NewService(mockRepo, mockHasher, newTestLogger())

	stored := domain.User{ID: uuid.New().String(), Email: "ana@mail.com", PasswordHash: "$2a$12$hash"}
	mockRepo.On("FindByEmail", mock.Anything, "ana@mail.com").Return(stored, true, nil)

	ctx := context.Background()
	user, found, err := svc.FindByEmail(ctx, "ana@mail.com")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stored, user)
	mockRepo.AssertExpectations(t)
}
