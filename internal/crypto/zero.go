package crypto

// Zero overwrites b with zeros. Derived keys and decrypted secrets are
// wiped with this as soon as their use ends.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
