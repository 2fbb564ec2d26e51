package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost é o fator de custo do bcrypt (12 rounds). Fixado propositalmente
// acima do default da lib para dificultar ataques de força bruta.
const Cost = 12

// PasswordHasher define o contrato de hashing de senhas.
// Componente folha: Serviço de usuário usa Hash, autenticação usa Verify.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) bool
}

// BcryptHasher é a implementação concreta de PasswordHasher usando bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cria um hasher com o fator de custo padrão do projeto.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: Cost}
}

// Hash gera o hash bcrypt (com salt embutido) da senha em texto puro.
// O resultado varia a cada chamada, mas permanece verificável via Verify.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compara a senha em texto puro com o hash salvo.
// Retorna true se, e somente se, a senha reproduz o hash. Sem efeitos colaterais.
func (h *BcryptHasher) Verify(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
