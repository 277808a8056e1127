package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the random per-record KDF salt.
	SaltSize = 64
	// KeySize is the length of the derived symmetric key.
	KeySize = 32

	argonMemory  = 64 * 1024 // KiB
	argonTime    = 3
	argonThreads = 4
)

// NewSalt returns a fresh random KDF salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey stretches a password into a KeySize symmetric key with
// argon2id. The parameters are fixed here and pinned by the record
// format version, so they never travel with the record. Any
// password/salt combination is valid input, including the empty
// password; policy checks belong to the caller.
func DeriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, KeySize)
}
