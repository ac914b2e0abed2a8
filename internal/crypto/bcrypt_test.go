package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	encoded, err := h.Hash("Str0ngPass!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$2a$04$"), encoded)
	assert.True(t, h.Verify("Str0ngPass!", encoded))
	assert.False(t, h.Verify("str0ngPass!", encoded))
	assert.False(t, h.Verify("Str0ngPass!", "not-a-hash"))
}

func TestBcrypt_NeedsRehash(t *testing.T) {
	low := NewBcryptHasher(bcrypt.MinCost)
	encoded, err := low.Hash("pw")
	require.NoError(t, err)

	assert.False(t, low.NeedsRehash(encoded))
	assert.True(t, NewBcryptHasher(bcrypt.MinCost+1).NeedsRehash(encoded))
	assert.True(t, low.NeedsRehash("garbage"))
}

func TestBcrypt_CostOutOfRangeFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, newBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, newBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 10, newBcryptHasher(10).cost)
}

func TestBcrypt_TooLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestBcrypt_Recognizes(t *testing.T) {
	h := newBcryptHasher(bcrypt.MinCost)
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		assert.True(t, h.recognizes(prefix+"10$abc"), prefix)
	}
	assert.False(t, h.recognizes("$argon2id$v=19"))
}
