package vault

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/crypto"
)

// FormatVersion pins the whole cryptographic suite: argon2id
// (m=64MiB, t=3, p=4) key derivation over a 64-byte salt, and
// XChaCha20-Poly1305 over the JSON payload. Bumping the version retires
// the suite as a unit; records never carry individual parameters.
const FormatVersion = 1

// Record is the persisted form of an encrypted keypair. PublicKey is a
// plaintext copy kept for display; it is never trusted — the decrypted
// payload's derived identifier is authoritative.
type Record struct {
	Version    int
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
	Salt       []byte
	PublicKey  string
}

// recordJSON is the on-disk layout. Byte fields are lowercase hex.
type recordJSON struct {
	Version   int    `json:"version"`
	Encrypted string `json:"encrypted"`
	IV        string `json:"iv"`
	AuthTag   string `json:"authTag"`
	Salt      string `json:"salt"`
	PublicKey string `json:"publicKey"`
}

// Marshal encodes the record as indented JSON.
func (r Record) Marshal() ([]byte, error) {
	return json.MarshalIndent(recordJSON{
		Version:   r.Version,
		Encrypted: hex.EncodeToString(r.Ciphertext),
		IV:        hex.EncodeToString(r.Nonce),
		AuthTag:   hex.EncodeToString(r.Tag),
		Salt:      hex.EncodeToString(r.Salt),
		PublicKey: r.PublicKey,
	}, "", "  ")
}

// UnmarshalRecord decodes JSON produced by Marshal. It only requires
// the byte fields to be valid hex; version and length checks happen in
// Decrypt.
func UnmarshalRecord(data []byte) (Record, error) {
	var rj recordJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	r := Record{Version: rj.Version, PublicKey: rj.PublicKey}
	var err error
	if r.Ciphertext, err = hexField("encrypted", rj.Encrypted); err != nil {
		return Record{}, err
	}
	if r.Nonce, err = hexField("iv", rj.IV); err != nil {
		return Record{}, err
	}
	if r.Tag, err = hexField("authTag", rj.AuthTag); err != nil {
		return Record{}, err
	}
	if r.Salt, err = hexField("salt", rj.Salt); err != nil {
		return Record{}, err
	}
	return r, nil
}

func hexField(name, v string) ([]byte, error) {
	b, err := hex.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q is not hex", ErrInvalidRecord, name)
	}
	return b, nil
}

// validate checks the structural invariants that must hold before any
// cryptographic work: field lengths fixed by the current format.
func (r Record) validate() error {
	if len(r.Salt) != crypto.SaltSize {
		return fmt.Errorf("%w: salt length %d", ErrInvalidRecord, len(r.Salt))
	}
	if len(r.Nonce) != crypto.NonceSize {
		return fmt.Errorf("%w: iv length %d", ErrInvalidRecord, len(r.Nonce))
	}
	if len(r.Tag) != crypto.TagSize {
		return fmt.Errorf("%w: authTag length %d", ErrInvalidRecord, len(r.Tag))
	}
	if len(r.Ciphertext) == 0 {
		return fmt.Errorf("%w: empty ciphertext", ErrInvalidRecord)
	}
	return nil
}
