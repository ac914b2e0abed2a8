// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2idPrefix = "$argon2id$"

	argon2SaltLen = 16
	argon2KeyLen  = 32

	// Upper bounds accepted when decoding stored hashes so a corrupted row
	// cannot make verification allocate unbounded memory.
	argon2MaxMemoryKiB = 4 * 1024 * 1024
	argon2MaxTime      = 64
	argon2MaxKeyLen    = 1024
)

// Argon2Params are the Argon2id cost parameters.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultArgon2Params follows the OWASP recommendation: 1 iteration, 64 MiB
// of memory and 4 lanes.
var DefaultArgon2Params = Argon2Params{
	Time:      1,
	MemoryKiB: 64 * 1024,
	Threads:   4,
}

// argon2idHasher produces PHC-formatted Argon2id hashes:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 key>
type argon2idHasher struct {
	params Argon2Params
}

// NewArgon2idHasher constructs an Argon2id [PasswordHasher]. Zero fields of
// params are replaced by [DefaultArgon2Params].
func NewArgon2idHasher(params Argon2Params) PasswordHasher {
	return newArgon2idHasher(params)
}

func newArgon2idHasher(params Argon2Params) *argon2idHasher {
	if params.Time == 0 {
		params.Time = DefaultArgon2Params.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = DefaultArgon2Params.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = DefaultArgon2Params.Threads
	}
	return &argon2idHasher{params: params}
}

func (h *argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, argon2KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		h.params.MemoryKiB, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2idHasher) Verify(password, encoded string) bool {
	decoded, err := decodeArgon2id(encoded)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), decoded.salt,
		decoded.params.Time, decoded.params.MemoryKiB, decoded.params.Threads, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(candidate, decoded.key) == 1
}

func (h *argon2idHasher) NeedsRehash(encoded string) bool {
	decoded, err := decodeArgon2id(encoded)
	if err != nil {
		return true
	}

	return decoded.params != h.params || len(decoded.key) != argon2KeyLen
}

func (h *argon2idHasher) recognizes(encoded string) bool {
	return strings.HasPrefix(encoded, argon2idPrefix)
}

type argon2idHash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

// decodeArgon2id parses a PHC string. Every deviation from the expected
// layout is reported as ErrMalformedHash.
func decodeArgon2id(encoded string) (argon2idHash, error) {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return argon2idHash{}, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return argon2idHash{}, fmt.Errorf("%w: version: %w", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return argon2idHash{}, ErrIncompatibleVersion
	}

	var (
		memory, time uint32
		threads      uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return argon2idHash{}, fmt.Errorf("%w: params: %w", ErrMalformedHash, err)
	}
	if memory == 0 || memory > argon2MaxMemoryKiB || time == 0 || time > argon2MaxTime || threads == 0 {
		return argon2idHash{}, fmt.Errorf("%w: params out of range", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return argon2idHash{}, fmt.Errorf("%w: salt", ErrMalformedHash)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > argon2MaxKeyLen {
		return argon2idHash{}, fmt.Errorf("%w: key", ErrMalformedHash)
	}

	return argon2idHash{
		params: Argon2Params{Time: time, MemoryKiB: memory, Threads: threads},
		salt:   salt,
		key:    key,
	}, nil
}
