package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hashers := map[string]PasswordHasher{
		"bcrypt":   {Algorithm: HashBcrypt, BcryptCost: bcrypt.MinCost},
		"argon2id": {Algorithm: HashArgon2id},
	}
	for name, hasher := range hashers {
		t.Run(name, func(t *testing.T) {
			for _, password := range []string{"pw123456", "", "ünïcødé pass", strings.Repeat("x", 64)} {
				hash, err := hasher.Hash(password)
				require.NoError(t, err)
				assert.NotEqual(t, password, hash)
				assert.True(t, hasher.Verify(password, hash), "password %q", password)
				assert.False(t, hasher.Verify(password+"!", hash), "password %q", password)
			}
		})
	}
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	hasher := PasswordHasher{Algorithm: HashBcrypt, BcryptCost: bcrypt.MinCost}
	first, err := hasher.Hash("pw123456")
	require.NoError(t, err)
	second, err := hasher.Hash("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_VerifiesEitherAlgorithm(t *testing.T) {
	argonHash, err := PasswordHasher{Algorithm: HashArgon2id}.Hash("pw123456")
	require.NoError(t, err)
	bcryptHash, err := PasswordHasher{Algorithm: HashBcrypt, BcryptCost: bcrypt.MinCost}.Hash("pw123456")
	require.NoError(t, err)

	hasher := PasswordHasher{Algorithm: HashBcrypt}
	assert.True(t, hasher.Verify("pw123456", argonHash))
	assert.True(t, hasher.Verify("pw123456", bcryptHash))
}

func TestPasswordHasher_RejectsMalformedHashes(t *testing.T) {
	hasher := PasswordHasher{}
	for _, hash := range []string{"", "plain", "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5", "$argon2id$broken", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$a2V5"} {
		assert.False(t, hasher.Verify("pw", hash), hash)
	}
}

func TestPasswordHasher_TooLong(t *testing.T) {
	_, err := PasswordHasher{Algorithm: HashBcrypt, BcryptCost: bcrypt.MinCost}.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestDecodeArgon2id(t *testing.T) {
	hash, err := PasswordHasher{Algorithm: HashArgon2id}.Hash("pw123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=1$"), hash)

	params, salt, key, err := decodeArgon2id(hash)
	require.NoError(t, err)
	assert.Equal(t, defaultArgon2, params)
	assert.Len(t, salt, argon2SaltLength)
	assert.Len(t, key, argon2KeyLength)

	tests := map[string]string{
		"other version":     "$argon2id$v=16$m=65536,t=3,p=1$c2FsdA$a2V5",
		"garbled params":    "$argon2id$v=19$memory=lots$c2FsdA$a2V5",
		"parallelism range": "$argon2id$v=19$m=65536,t=3,p=300$c2FsdA$a2V5",
		"empty key":         "$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$",
	}
	for name, encoded := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := decodeArgon2id(encoded)
			assert.Error(t, err)
		})
	}
}
