package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"goshop/internal/pkg/hash"
)

// TestHashAndVerify_RoundTrip testa que a senha hasheada é verificável.
func TestHashAndVerify_RoundTrip(t *testing.T) {
	hasher := hash.NewBcryptHasher()

	hashed, err := hasher.Hash("pw123")

	assert.NoError(t, err)
	assert.NotEqual(t, "", hashed)
	assert.NotEqual(t, "pw123", hashed)
	assert.True(t, hasher.Verify("pw123", hashed))
}

// TestVerify_WrongPassword testa que a senha incorreta não verifica.
func TestVerify_WrongPassword(t *testing.T) {
	hasher := hash.NewBcryptHasher()

	hashed, err := hasher.Hash("pw123")

	assert.NoError(t, err)
	assert.False(t, hasher.Verify("errada", hashed))
}

// TestVerify_MalformedHash testa que um hash malformado não verifica (sem pânico).
func TestVerify_MalformedHash(t *testing.T) {
	hasher := hash.NewBcryptHasher()

	assert.False(t, hasher.Verify("pw123", "isto-não-é-um-hash-bcrypt"))
}

// TestHash_SaltedOutput testa que duas chamadas produzem hashes distintos
// (salt embutido), ambos verificáveis.
func TestHash_SaltedOutput(t *testing.T) {
	hasher := hash.NewBcryptHasher()

	first, err := hasher.Hash("pw123")
	assert.NoError(t, err)
	second, err := hasher.Hash("pw123")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("pw123", first))
	assert.True(t, hasher.Verify("pw123", second))
}

// TestHash_CostFactor testa que o fator de custo embutido no hash é 12.
func TestHash_CostFactor(t *testing.T) {
	hasher := hash.NewBcryptHasher()

	hashed, err := hasher.Hash("pw123")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	assert.NoError(t, err)
	assert.Equal(t, hash.Cost, cost)
}
