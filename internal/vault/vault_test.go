package vault

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/crypto"
	"github.com/ryan-huang1/raydium-sdk-V2-demo/internal/keypair"
)

// testKeypair returns a fixed keypair so failures reproduce.
func testKeypair(t testing.TB) keypair.Keypair {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	kp, err := keypair.FromSecret([]byte(ed25519.NewKeyFromSeed(seed)))
	if err != nil {
		t.Fatalf("test keypair: %v", err)
	}
	return kp
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp := testKeypair(t)
	rec, err := Encrypt(kp, "correct-horse")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if rec.Version != FormatVersion {
		t.Fatalf("version %d, want %d", rec.Version, FormatVersion)
	}
	if rec.PublicKey != kp.PublicKey() {
		t.Fatal("plaintext publicKey copy mismatch")
	}

	got, err := Decrypt(rec, "correct-horse")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(got.Secret, kp.Secret) {
		t.Fatal("secret mismatch after round trip")
	}
	if got.PublicKey() != kp.PublicKey() {
		t.Fatal("public key mismatch after round trip")
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	rec, err := Encrypt(testKeypair(t), "correct-horse")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(rec, "wrong-password"); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestDecryptTamperedFields(t *testing.T) {
	rec, err := Encrypt(testKeypair(t), "correct-horse")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	fields := map[string]func(r *Record) []byte{
		"ciphertext": func(r *Record) []byte { return r.Ciphertext },
		"iv":         func(r *Record) []byte { return r.Nonce },
		"authTag":    func(r *Record) []byte { return r.Tag },
		"salt":       func(r *Record) []byte { return r.Salt },
	}
	for name, field := range fields {
		mut := cloneRecord(rec)
		b := field(&mut)
		b[len(b)/2] ^= 0x01
		if _, err := Decrypt(mut, "correct-horse"); !errors.Is(err, ErrAuthentication) {
			t.Fatalf("%s: single-bit flip must fail with ErrAuthentication, got %v", name, err)
		}
	}
}

func TestEncryptNonDeterministic(t *testing.T) {
	kp := testKeypair(t)
	r1, err := Encrypt(kp, "correct-horse")
	if err != nil {
		t.Fatalf("encrypt 1: %v", err)
	}
	r2, err := Encrypt(kp, "correct-horse")
	if err != nil {
		t.Fatalf("encrypt 2: %v", err)
	}
	if bytes.Equal(r1.Salt, r2.Salt) {
		t.Fatal("expected distinct salts")
	}
	if bytes.Equal(r1.Nonce, r2.Nonce) {
		t.Fatal("expected distinct nonces")
	}
	if bytes.Equal(r1.Ciphertext, r2.Ciphertext) {
		t.Fatal("expected distinct ciphertexts")
	}
	for _, r := range []Record{r1, r2} {
		got, err := Decrypt(r, "correct-horse")
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if !bytes.Equal(got.Secret, kp.Secret) {
			t.Fatal("round trip mismatch")
		}
	}
}

func TestDecryptUnsupportedVersion(t *testing.T) {
	rec, err := Encrypt(testKeypair(t), "correct-horse")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	rec.Version = FormatVersion + 1
	_, err = Decrypt(rec, "correct-horse")
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	// The gate fires before any key derivation, so even a wrong password
	// reports the version problem, not an authentication failure.
	if _, err := Decrypt(rec, "wrong-password"); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	kp := testKeypair(t)
	if _, err := Encrypt(kp, ""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("encrypt: expected ErrEmptyPassword, got %v", err)
	}
	rec, err := Encrypt(kp, "correct-horse")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(rec, ""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("decrypt: expected ErrEmptyPassword, got %v", err)
	}
}

func TestRotate(t *testing.T) {
	kp := testKeypair(t)
	rec, err := Encrypt(kp, "old-password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	next, err := Rotate(rec, "old-password", "new-password")
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if bytes.Equal(rec.Salt, next.Salt) {
		t.Fatal("rotation must draw a fresh salt")
	}
	if _, err := Decrypt(next, "old-password"); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	got, err := Decrypt(next, "new-password")
	if err != nil {
		t.Fatalf("decrypt rotated: %v", err)
	}
	if !bytes.Equal(got.Secret, kp.Secret) {
		t.Fatal("secret changed across rotation")
	}
}

func TestDecryptIdentifierMismatch(t *testing.T) {
	// Build an authentic record whose payload carries a wrong identifier;
	// only the defensive recomputation can catch it.
	kp := testKeypair(t)
	salt, err := crypto.NewSalt()
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	nonce, err := crypto.NewNonce()
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}
	pt, err := json.Marshal(payload{
		PublicKey: "not-the-real-identifier",
		SecretKey: hex.EncodeToString(kp.Secret),
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	key := crypto.DeriveKey("correct-horse", salt)
	ct, tag, err := crypto.SealDetached(key, nonce, pt, aad(FormatVersion))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	rec := Record{
		Version:    FormatVersion,
		Ciphertext: ct,
		Nonce:      nonce,
		Tag:        tag,
		Salt:       salt,
		PublicKey:  kp.PublicKey(),
	}
	if _, err := Decrypt(rec, "correct-horse"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestDecryptMalformedPayload(t *testing.T) {
	// Authentic ciphertext that is not the expected JSON payload.
	salt, err := crypto.NewSalt()
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	nonce, err := crypto.NewNonce()
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}
	key := crypto.DeriveKey("correct-horse", salt)
	ct, tag, err := crypto.SealDetached(key, nonce, []byte("not json"), aad(FormatVersion))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	rec := Record{Version: FormatVersion, Ciphertext: ct, Nonce: nonce, Tag: tag, Salt: salt}
	if _, err := Decrypt(rec, "correct-horse"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func cloneRecord(r Record) Record {
	return Record{
		Version:    r.Version,
		Ciphertext: append([]byte(nil), r.Ciphertext...),
		Nonce:      append([]byte(nil), r.Nonce...),
		Tag:        append([]byte(nil), r.Tag...),
		Salt:       append([]byte(nil), r.Salt...),
		PublicKey:  r.PublicKey,
	}
}

func FuzzDecryptRejectMutations(f *testing.F) {
	f.Add(uint(0), uint8(1))
	f.Add(uint(7), uint8(3))
	f.Add(uint(100), uint8(7))
	f.Fuzz(func(t *testing.T, idx uint, bit uint8) {
		kp := testKeypair(t)
		rec, err := Encrypt(kp, "fuzz-password")
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		mut := cloneRecord(rec)
		fields := [][]byte{mut.Ciphertext, mut.Nonce, mut.Tag, mut.Salt}
		field := fields[int(idx)%len(fields)]
		field[int(idx/4)%len(field)] ^= 1 << (bit % 8)
		if _, err := Decrypt(mut, "fuzz-password"); !errors.Is(err, ErrAuthentication) {
			t.Fatalf("mutation survived authentication: %v", err)
		}
	})
}
