// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keystore

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
const (
	// ErrMissingPassword is returned when an operation that requires the
	// seed is invoked with an empty password.
	ErrMissingPassword = ErrorKind("ErrMissingPassword")

	// ErrWrongPassword is returned when the provided password fails to
	// authenticate against the sealed seed.
	ErrWrongPassword = ErrorKind("ErrWrongPassword")

	// ErrAccountNotFound is returned when no account is registered for the
	// requested coin.
	ErrAccountNotFound = ErrorKind("ErrAccountNotFound")

	// ErrInvalidMnemonic is returned when a mnemonic phrase fails BIP39
	// validation.
	ErrInvalidMnemonic = ErrorKind("ErrInvalidMnemonic")

	// ErrInvalidDerivationPath is returned when a derivation path string
	// cannot be parsed.
	ErrInvalidDerivationPath = ErrorKind("ErrInvalidDerivationPath")

	// ErrInvalidHashLen is returned when the hash to sign is not 32 bytes.
	ErrInvalidHashLen = ErrorKind("ErrInvalidHashLen")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a keystore error.  It has full support for errors.Is and
// errors.As, so the caller can ascertain the specific reason for the error by
// checking the underlying error.
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
