package crypto

import (
	"crypto/rand"
	"errors"

	xchacha "golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the XChaCha20-Poly1305 nonce length.
	NonceSize = xchacha.NonceSizeX
	// TagSize is the Poly1305 authentication tag length.
	TagSize = xchacha.Overhead
)

// ErrAuthFailed is returned whenever tag verification fails, regardless
// of which input was wrong.
var ErrAuthFailed = errors.New("crypto: message authentication failed")

// NewNonce returns a fresh random AEAD nonce.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

// SealDetached encrypts plaintext under (key, nonce) with
// XChaCha20-Poly1305 and returns ciphertext and authentication tag as
// separate slices. The tag covers both the ciphertext and aad.
func SealDetached(key, nonce, plaintext, aad []byte) (ct, tag []byte, err error) {
	aead, err := xchacha.NewX(key)
	if err != nil {
		return nil, nil, err
	}
	sealed := aead.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - TagSize
	return sealed[:split], sealed[split:], nil
}

// OpenDetached reverses SealDetached. The nonce must be exactly
// NonceSize bytes; callers validate lengths before reaching here.
func OpenDetached(key, nonce, ct, tag, aad []byte) ([]byte, error) {
	aead, err := xchacha.NewX(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(ct)+len(tag))
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)
	pt, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return pt, nil
}
