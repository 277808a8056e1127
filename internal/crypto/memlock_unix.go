//go:build linux || darwin

package crypto

import "golang.org/x/sys/unix"

// LockMemory pins b so it cannot be swapped to disk. Best effort:
// callers ignore failures such as an exhausted RLIMIT_MEMLOCK.
func LockMemory(b []byte) error { return unix.Mlock(b) }

// UnlockMemory releases a LockMemory pin.
func UnlockMemory(b []byte) error { return unix.Munlock(b) }
