package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("correct horse battery stapl", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("samepassword")
	assert.NoError(t, err)
	second, err := HashPassword("samepassword")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(12)
	assert.NoError(t, err)
	assert.Len(t, token, 24) // hex doubles the byte count

	other, err := GenerateRandomToken(12)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("whatever")
	assert.Error(t, err)

	bcryptGenerateFromPassword = origBcrypt
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateRandomToken(12)
	assert.Error(t, err)
}
