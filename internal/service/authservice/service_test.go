package authservice_test

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
	"goshop/internal/service/authservice"
)

// MockUserDirectory é uma implementação mock da interface domain.UserService
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	args := m.Called(ctx, registration)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
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

// MockTokenIssuer é uma implementação mock da interface authservice.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("fatal")
}

// TestLogin_Success testa o pipeline completo: usuário existe, senha confere,
// token emitido com o email como subject.
func TestLogin_Success(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	storedUser := domain.User{ID: uuid.New().String(), Email: "ana@mail.com", PasswordHash: "$2a$12$hash"}
	mockUsers.On("FindByEmail", mock.Anything, "ana@mail.com").Return(storedUser, true, nil)
	mockHasher.On("Verify", "pw123", "$2a$12$hash").Return(true)
	mockTokens.On("GenerateToken", "ana@mail.com").Return("jwt-token", nil)

	ctx := context.Background()
	token, err := svc.Login(ctx, "ana@mail.com", "pw123")

	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	mockUsers.AssertExpectations(t)
	mockHasher.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

// TestLogin_Fail_UnknownUser testa que email desconhecido gera UnauthorizedError,
// sem chegar na comparação de senha nem na emissão de token.
func TestLogin_Fail_UnknownUser(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	mockUsers.On("FindByEmail", mock.Anything, "ninguem@mail.com").Return(domain.User{}, false, nil)

	ctx := context.Background()
	_, err := svc.Login(ctx, "ninguem@mail.com", "pw123")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	mockHasher.AssertNotCalled(t, "Verify")
	mockTokens.AssertNotCalled(t, "GenerateToken")
}

// TestLogin_Fail_WrongPassword testa que senha incorreta gera UnauthorizedError,
// sem emissão de token.
func TestLogin_Fail_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	storedUser := domain.User{ID: uuid.New().String(), Email: "ana@mail.com", PasswordHash: "$2a$12$hash"}
	mockUsers.On("FindByEmail", mock.Anything, "ana@mail.com").Return(storedUser, true, nil)
	mockHasher.On("Verify", "errada", "$2a$12$hash").Return(false)

	ctx := context.Background()
	_, err := svc.Login(ctx, "ana@mail.com", "errada")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	mockTokens.AssertNotCalled(t, "GenerateToken")
}

// TestLogin_SameErrorForBothFailures garante que "usuário inexistente" e
// "senha incorreta" são observavelmente indistinguíveis para o chamador.
func TestLogin_SameErrorForBothFailures(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	storedUser := domain.User{ID: uuid.New().String(), Email: "ana@mail.com", PasswordHash: "$2a$12$hash"}
	mockUsers.On("FindByEmail", mock.Anything, "ninguem@mail.com").Return(domain.User{}, false, nil)
	mockUsers.On("FindByEmail", mock.Anything, "ana@mail.com").Return(storedUser, true, nil)
	mockHasher.On("Verify", "errada", "$2a$12$hash").Return(false)

	ctx := context.Background()
	_, errUnknown := svc.Login(ctx, "ninguem@mail.com", "qualquer")
	_, errWrongPw := svc.Login(ctx, "ana@mail.com", "errada")

	assert.IsType(t, errUnknown, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

// TestLogin_Fail_EmptyCredentials testa que credenciais vazias são rejeitadas
// com o mesmo erro 401.
func TestLogin_Fail_EmptyCredentials(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	ctx := context.Background()
	_, err := svc.Login(ctx, "", "pw123")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	mockUsers.AssertNotCalled(t, "FindByEmail")
}

// TestLogin_Fail_TokenError testa que falha na emissão do token vira InternalError.
func TestLogin_Fail_TokenError(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	storedUser := domain.User{ID: uuid.New().String(), Email: "ana@mail.com", PasswordHash: "$2a$12$hash"}
	mockUsers.On("FindByEmail", mock.Anything, "ana@mail.com").Return(storedUser, true, nil)
	mockHasher.On("Verify", "pw123", "$2a$12$hash").Return(true)
	mockTokens.On("GenerateToken", "ana@mail.com").Return("", errors.New("signing failure"))

	ctx := context.Background()
	_, err := svc.Login(ctx, "ana@mail.com", "pw123")

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
}

// TestLogin_Fail_DirectoryError testa que falhas de infraestrutura na busca
// propagam sem serem convertidas em 401.
func TestLogin_Fail_DirectoryError(t *testing.T) {
	mockUsers := new(MockUserDirectory)
	mockHasher := new(MockPasswordHasher)
	mockTokens := new(MockTokenIssuer)
	svc := authservice.NewService(mockUsers, mockHasher, mockTokens, newTestLogger())

	dbError := apperror.NewDBError("failed to find user by email 'ana@mail.com'", errors.New("connection lost"))
	mockUsers.On("FindByEmail", mock.Anything, "ana@mail.com").Return(domain.User{}, false, dbError)

	ctx := context.Background()
	_, err := svc.Login(ctx, "ana@mail.com", "pw123")

	assert.Error(t, err)
	assert.Equal(t, dbError, err)
	mockHasher.AssertNotCalled(t, "Verify")
}
