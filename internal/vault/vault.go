// Package vault is the encrypted credential store for a wallet keypair.
// A password is stretched with argon2id over a random 64-byte salt, and
// the serialized keypair is sealed with XChaCha20-Poly1305; the result
// persists as a JSON record with hex-encoded byte fields. Every call is
// stateless — the package keeps no key material between operations.
package vault

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/crypto"
	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/keypair"
)

// payload is the plaintext serialized under the AEAD.
type payload struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"` // hex
}

// aad binds the ciphertext to the record format version, so a record
// cannot be replayed under a different suite.
func aad(version int) []byte {
	return []byte(fmt.Sprintf("wallet-record:v%d", version))
}

// Encrypt seals kp under password into a fresh Record. Every call draws
// a new salt and nonce, so two records for the same inputs never match
// byte-wise, yet both decrypt to the same keypair.
func Encrypt(kp keypair.Keypair, password string) (Record, error) {
	if password == "" {
		return Record{}, ErrEmptyPassword
	}
	salt, err := crypto.NewSalt()
	if err != nil {
		return Record{}, err
	}
	nonce, err := crypto.NewNonce()
	if err != nil {
		return Record{}, err
	}

	key := crypto.DeriveKey(password, salt)
	_ = crypto.LockMemory(key)
	defer func() {
		crypto.Zero(key)
		_ = crypto.UnlockMemory(key)
	}()

	pt, err := json.Marshal(payload{
		PublicKey: kp.PublicKey(),
		SecretKey: hex.EncodeToString(kp.Secret),
	})
	if err != nil {
		return Record{}, err
	}
	defer crypto.Zero(pt)

	ct, tag, err := crypto.SealDetached(key, nonce, pt, aad(FormatVersion))
	if err != nil {
		return Record{}, err
	}
	return Record{
		Version:    FormatVersion,
		Ciphertext: ct,
		Nonce:      nonce,
		Tag:        tag,
		Salt:       salt,
		PublicKey:  kp.PublicKey(),
	}, nil
}

// Decrypt authenticates and opens a record. It fails closed: any tag
// mismatch — wrong password, flipped bit anywhere in ciphertext, nonce,
// tag or salt — surfaces as ErrAuthentication with no plaintext.
func Decrypt(rec Record, password string) (keypair.Keypair, error) {
	if password == "" {
		return keypair.Keypair{}, ErrEmptyPassword
	}
	if rec.Version != FormatVersion {
		return keypair.Keypair{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}
	if err := rec.validate(); err != nil {
		return keypair.Keypair{}, err
	}

	key := crypto.DeriveKey(password, rec.Salt)
	_ = crypto.LockMemory(key)
	defer func() {
		crypto.Zero(key)
		_ = crypto.UnlockMemory(key)
	}()

	pt, err := crypto.OpenDetached(key, rec.Nonce, rec.Ciphertext, rec.Tag, aad(rec.Version))
	if err != nil {
		return keypair.Keypair{}, ErrAuthentication
	}
	defer crypto.Zero(pt)

	var p payload
	if err := json.Unmarshal(pt, &p); err != nil {
		return keypair.Keypair{}, fmt.Errorf("%w: payload decode: %v", ErrFormat, err)
	}
	secret, err := hex.DecodeString(p.SecretKey)
	if err != nil {
		return keypair.Keypair{}, fmt.Errorf("%w: secret encoding", ErrFormat)
	}
	kp, err := keypair.FromSecret(secret)
	crypto.Zero(secret)
	if err != nil {
		return keypair.Keypair{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	// Consistency check, not a security control: the bytes are already
	// authenticated, this only catches a payload written with the wrong
	// identifier.
	if kp.PublicKey() != p.PublicKey {
		kp.Zero()
		return keypair.Keypair{}, fmt.Errorf("%w: identifier mismatch", ErrFormat)
	}
	return kp, nil
}

// Rotate re-encrypts a record under a new password. The decrypted
// keypair never leaves this function.
func Rotate(rec Record, oldPassword, newPassword string) (Record, error) {
	kp, err := Decrypt(rec, oldPassword)
	if err != nil {
		return Record{}, err
	}
	defer kp.Zero()
	return Encrypt(kp, newPassword)
}
