package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-auth-portal/internal/config"
)

const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// multiHasher hashes with the preferred algorithm and verifies any encoding
// it knows, so switching the configured algorithm does not lock out users
// whose hashes were produced by the previous one.
type multiHasher struct {
	preferred algorithm
	known     []algorithm
}

// NewPasswordHasher builds the application [PasswordHasher] from cfg.
// cfg.PasswordHasher selects the algorithm for new hashes; argon2id and
// bcrypt hashes are both accepted for verification.
func NewPasswordHasher(cfg config.Auth) (PasswordHasher, error) {
	argon := newArgon2idHasher(Argon2Params{
		Time:      cfg.Argon2.Time,
		MemoryKiB: cfg.Argon2.MemoryKiB,
		Threads:   cfg.Argon2.Threads,
	})
	bc := newBcryptHasher(cfg.BcryptCost)

	var preferred algorithm
	switch cfg.PasswordHasher {
	case AlgorithmArgon2id, "":
		preferred = argon
	case AlgorithmBcrypt:
		preferred = bc
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.PasswordHasher)
	}

	return &multiHasher{
		preferred: preferred,
		known:     []algorithm{argon, bc},
	}, nil
}

func (m *multiHasher) Hash(password string) (string, error) {
	return m.preferred.Hash(password)
}

func (m *multiHasher) Verify(password, encoded string) bool {
	for _, alg := range m.known {
		if alg.recognizes(encoded) {
			return alg.Verify(password, encoded)
		}
	}
	return false
}

func (m *multiHasher) NeedsRehash(encoded string) bool {
	if !m.preferred.recognizes(encoded) {
		return true
	}
	return m.preferred.NeedsRehash(encoded)
}
