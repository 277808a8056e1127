// Package keypair represents the ed25519 wallet keypair held by the
// vault: 64 secret bytes (seed followed by the public key), identified
// by the base58 encoding of the public half.
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// SecretSize is the byte length of a wallet secret: a 32-byte seed
// followed by the 32-byte public key.
const SecretSize = ed25519.PrivateKeySize

var (
	ErrBadLength    = errors.New("keypair: secret must be 64 bytes")
	ErrInconsistent = errors.New("keypair: public half does not match seed")
)

// Keypair is a decrypted wallet credential. The holder owns Secret and
// is responsible for wiping it with Zero once done.
type Keypair struct {
	Secret []byte
}

// Generate creates a fresh random keypair.
func Generate() (Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{Secret: []byte(priv)}, nil
}

// FromSecret imports raw secret bytes. Besides the length check it
// re-derives the public key from the seed and requires it to match the
// embedded public half, so a truncated or spliced secret never loads.
func FromSecret(secret []byte) (Keypair, error) {
	if len(secret) != SecretSize {
		return Keypair{}, ErrBadLength
	}
	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], secret[ed25519.SeedSize:]) {
		return Keypair{}, ErrInconsistent
	}
	kp := Keypair{Secret: make([]byte, SecretSize)}
	copy(kp.Secret, secret)
	return kp, nil
}

// FromBase58 imports a base58-encoded 64-byte secret.
func FromBase58(s string) (Keypair, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Keypair{}, fmt.Errorf("keypair: decode secret: %w", err)
	}
	kp, err := FromSecret(raw)
	for i := range raw {
		raw[i] = 0
	}
	return kp, err
}

// PublicKey returns the base58 public identifier.
func (k Keypair) PublicKey() string {
	return base58.Encode(k.Secret[ed25519.SeedSize:])
}

// SecretBase58 returns the base58 encoding of the full secret.
func (k Keypair) SecretBase58() string {
	return base58.Encode(k.Secret)
}

// Zero wipes the secret bytes.
func (k Keypair) Zero() {
	for i := range k.Secret {
		k.Secret[i] = 0
	}
}
