package vault

import "errors"

// Failure categories. Everything the package returns wraps one of these
// sentinels, so callers branch with errors.Is.

// Validation: bad input detected before any cryptographic work.
var (
	ErrEmptyPassword = errors.New("vault: password must not be empty")
	ErrInvalidRecord = errors.New("vault: malformed record")
)

// Format: a record this version does not handle, or authenticated
// plaintext that does not deserialize into a keypair.
var (
	ErrUnsupportedVersion = errors.New("vault: unsupported record version")
	ErrFormat             = errors.New("vault: bad record contents")
)

// ErrAuthentication is the tag-verification failure. The message
// deliberately does not say whether the password was wrong or the
// record corrupted; callers surface it as-is.
var ErrAuthentication = errors.New("vault: wrong password or corrupted record")

// ErrStorage wraps file I/O failures from Save and Load.
var ErrStorage = errors.New("vault: storage failure")
