// Copyright (c) 2014 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrDeriveHardFromPublic is returned when an attempt is made to derive
	// a hardened extended key from a public key.
	ErrDeriveHardFromPublic = ErrorKind("ErrDeriveHardFromPublic")

	// ErrNotPrivExtKey is returned when an attempt is made to extract a
	// private key from a public extended key.
	ErrNotPrivExtKey = ErrorKind("ErrNotPrivExtKey")

	// ErrInvalidChild is returned when the child extended key at a given
	// index is invalid due to the derived key falling outside of the valid
	// range for secp256k1 private keys.  This error indicates the caller
	// should simply ignore the invalid child extended key at this index and
	// increment to the next index.
	ErrInvalidChild = ErrorKind("ErrInvalidChild")

	// ErrMaxDepthExceeded is returned when a caller attempts to derive a
	// child extended key from a parent that is already at the maximum
	// supported derivation depth.
	ErrMaxDepthExceeded = ErrorKind("ErrMaxDepthExceeded")

	// ErrUnusableSeed is returned when the provided seed is not usable due
	// to the derived key falling outside of the valid range for secp256k1
	// private keys.
	ErrUnusableSeed = ErrorKind("ErrUnusableSeed")

	// ErrInvalidSeedLen is returned when the provided seed or seed length
	// is not in the allowed range.
	ErrInvalidSeedLen = ErrorKind("ErrInvalidSeedLen")

	// ErrBadChecksum is returned when decoding a serialized extended key
	// whose checksum does not match the calculated value.
	ErrBadChecksum = ErrorKind("ErrBadChecksum")

	// ErrInvalidKeyLen is returned when decoding a serialized extended key
	// that is not the expected length.
	ErrInvalidKeyLen = ErrorKind("ErrInvalidKeyLen")

	// ErrWrongNetwork is returned when decoding a serialized extended key
	// whose version prefix does not match the provided network.
	ErrWrongNetwork = ErrorKind("ErrWrongNetwork")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to extended keys.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific
// reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
