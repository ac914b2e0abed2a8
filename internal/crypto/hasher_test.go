package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-auth-portal/internal/config"
)

func testAuthConfig(algorithm string) config.Auth {
	return config.Auth{
		PasswordHasher: algorithm,
		Argon2:         config.Argon2{Time: 1, MemoryKiB: 64, Threads: 1},
		BcryptCost:     bcrypt.MinCost,
	}
}

func TestNewPasswordHasher_UnknownAlgorithm(t *testing.T) {
	h, err := NewPasswordHasher(testAuthConfig("md5"))
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestPasswordHasher_Roundtrip(t *testing.T) {
	for _, alg := range []string{AlgorithmArgon2id, AlgorithmBcrypt} {
		t.Run(alg, func(t *testing.T) {
			h, err := NewPasswordHasher(testAuthConfig(alg))
			require.NoError(t, err)

			encoded, err := h.Hash("Str0ngPass!")
			require.NoError(t, err)

			assert.NotEqual(t, "Str0ngPass!", encoded)
			assert.True(t, h.Verify("Str0ngPass!", encoded))
			assert.False(t, h.Verify("other-secret", encoded))
			assert.False(t, h.NeedsRehash(encoded))
		})
	}
}

// TestPasswordHasher_CrossAlgorithm checks that switching the preferred
// algorithm keeps old hashes verifiable and flags them for rehash.
func TestPasswordHasher_CrossAlgorithm(t *testing.T) {
	bc, err := NewPasswordHasher(testAuthConfig(AlgorithmBcrypt))
	require.NoError(t, err)
	argon, err := NewPasswordHasher(testAuthConfig(AlgorithmArgon2id))
	require.NoError(t, err)

	bcryptHash, err := bc.Hash("pw-one")
	require.NoError(t, err)
	argonHash, err := argon.Hash("pw-two")
	require.NoError(t, err)

	assert.True(t, argon.Verify("pw-one", bcryptHash))
	assert.True(t, argon.NeedsRehash(bcryptHash))

	assert.True(t, bc.Verify("pw-two", argonHash))
	assert.True(t, bc.NeedsRehash(argonHash))
}

func TestPasswordHasher_UnknownEncoding(t *testing.T) {
	h, err := NewPasswordHasher(testAuthConfig(AlgorithmArgon2id))
	require.NoError(t, err)

	for _, encoded := range []string{"", "plaintext", "$pbkdf2-sha256$1$abc$def", "$argon2id$"} {
		assert.False(t, h.Verify("plaintext", encoded), encoded)
		assert.True(t, h.NeedsRehash(encoded), encoded)
	}
}
