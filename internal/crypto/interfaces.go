package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into encoded one-way hashes and
// checks candidates against them.
//
// Encoded hashes are self-describing: the algorithm, its cost parameters and
// the salt travel inside the string, so a hash produced with older settings
// keeps verifying after the configuration changes.
type PasswordHasher interface {
	// Hash returns a freshly salted encoded hash of password. Two calls with
	// the same input produce different outputs.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. The comparison runs in
	// constant time with respect to the digest. Malformed or unknown encodings
	// yield false.
	Verify(password, encoded string) bool

	// NeedsRehash reports whether encoded was produced with a different
	// algorithm or different parameters than the ones currently configured.
	NeedsRehash(encoded string) bool
}

// algorithm is a PasswordHasher bound to one encoding format.
type algorithm interface {
	PasswordHasher

	// recognizes reports whether encoded uses this algorithm's format.
	recognizes(encoded string) bool
}
