// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fwutil

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind.
//
// All of the kinds other than ErrInvalidHashLen describe validation failures
// of untrusted input and are recoverable: the caller should surface them as
// an unsupported chain or an invalid address.  ErrInvalidHashLen indicates a
// hash of the wrong length was passed to a constructor, which is a
// programming error on the part of the caller.
const (
	// ErrUnsupportedChain is returned when a coin identifier is not
	// registered in the chaincfg network registry.
	ErrUnsupportedChain = ErrorKind("ErrUnsupportedChain")

	// ErrInvalidPubKey is returned when a serialized public key does not
	// parse as a point on the secp256k1 curve.
	ErrInvalidPubKey = ErrorKind("ErrInvalidPubKey")

	// ErrBadAddressChecksum is returned when an address fails to decode due
	// to a checksum mismatch.
	ErrBadAddressChecksum = ErrorKind("ErrBadAddressChecksum")

	// ErrInvalidAddrLen is returned when an address fails to decode because
	// either its encoded form or its decoded payload is not a valid length.
	ErrInvalidAddrLen = ErrorKind("ErrInvalidAddrLen")

	// ErrMalformedAddress is returned when an address fails to decode for a
	// reason not covered by a more specific kind.
	ErrMalformedAddress = ErrorKind("ErrMalformedAddress")

	// ErrUnknownAddrVersion is returned when the version byte of a
	// Base58Check address does not identify any registered network and
	// address kind.
	ErrUnknownAddrVersion = ErrorKind("ErrUnknownAddrVersion")

	// ErrEmptyBech32Payload is returned when the data portion of a decoded
	// bech32 address is empty.
	ErrEmptyBech32Payload = ErrorKind("ErrEmptyBech32Payload")

	// ErrInvalidWitnessVersion is returned when the witness version of a
	// bech32 address is greater than 16.
	ErrInvalidWitnessVersion = ErrorKind("ErrInvalidWitnessVersion")

	// ErrInvalidWitnessProgramLen is returned when a witness program is not
	// between 2 and 40 bytes.
	ErrInvalidWitnessProgramLen = ErrorKind("ErrInvalidWitnessProgramLen")

	// ErrInvalidWitnessV0ProgramLen is returned when a version 0 witness
	// program is neither 20 nor 32 bytes.
	ErrInvalidWitnessV0ProgramLen = ErrorKind("ErrInvalidWitnessV0ProgramLen")

	// ErrInvalidHashLen is returned when a hash passed to an address
	// constructor is not 20 bytes.
	ErrInvalidHashLen = ErrorKind("ErrInvalidHashLen")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an address-related error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
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
