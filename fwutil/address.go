// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fwutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/base58"
	"github.com/decred/dcrd/bech32"
	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/forkwallet/forkwallet/chaincfg"
)

// Opcodes used by the payment scripts the supported address kinds project
// to.  Only the handful of opcodes that appear in those script templates are
// needed here since script execution is out of scope for this package.
const (
	op0           = 0x00 // OP_0
	opData20      = 0x14 // OP_DATA_20
	op1           = 0x51 // OP_1
	opDup         = 0x76 // OP_DUP
	opEqual       = 0x87 // OP_EQUAL
	opEqualVerify = 0x88 // OP_EQUALVERIFY
	opHash160     = 0xa9 // OP_HASH160
	opCheckSig    = 0xac // OP_CHECKSIG
)

const (
	// maxWitnessProgramLen is the maximum number of bytes a witness program
	// may be per [BIP141].
	maxWitnessProgramLen = 40

	// minWitnessProgramLen is the minimum number of bytes a witness program
	// may be per [BIP141].
	minWitnessProgramLen = 2

	// maxWitnessVersion is the maximum witness version per [BIP141].
	maxWitnessVersion = 16
)

// AddressParams defines an interface that is used to provide the parameters
// required when encoding and decoding addresses.  These values are typically
// well-defined and unique per network, and the chaincfg package provides them
// for all of the supported networks.
type AddressParams interface {
	// Coin returns the canonical coin identifier for the network.
	Coin() string

	// Bech32HRP returns the human-readable part for native witness
	// addresses on the network.
	Bech32HRP() string

	// AddrIDPubKeyHashV0 returns the Base58Check version byte for
	// pay-to-pubkey-hash addresses.
	AddrIDPubKeyHashV0() byte

	// AddrIDScriptHashV0 returns the Base58Check version byte for
	// pay-to-script-hash addresses.
	AddrIDScriptHashV0() byte
}

// Address is an interface type for any type of destination a transaction
// output may spend to.  This includes pay-to-pubkey-hash (P2PKH),
// pay-to-script-hash (P2SH), and native witness program addresses.  The
// interface is a closed set: decoding only ever produces the three concrete
// types in this package.
type Address interface {
	// String returns the canonical text encoding of the address.
	String() string

	// PaymentScript returns the script to pay a transaction output to the
	// address.  It is the only address behavior downstream transaction
	// building code may depend on.
	PaymentScript() []byte

	// Net returns the parameters of the network the address belongs to.
	Net() AddressParams
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	sum := sha256.Sum256(buf)
	hasher := ripemd160.New()
	hasher.Write(sum[:])
	return hasher.Sum(nil)
}

// checksum returns the first four bytes of the double SHA256 of the input.
func checksum(input []byte) []byte {
	return chainhash.DoubleHashB(input)[:4]
}

// encodeBase58Address returns a human-readable payment address given a
// ripemd160 hash and a version byte which encodes the network and address
// kind.  It is used in both pay-to-pubkey-hash (P2PKH) and
// pay-to-script-hash (P2SH) address encoding.
func encodeBase58Address(hash160 []byte, versionID byte) string {
	// The overall format is:
	//
	//   1-byte network and address kind || 20-byte hash || 4-byte checksum
	b := make([]byte, 0, 1+ripemd160.Size+4)
	b = append(b, versionID)
	b = append(b, hash160[:ripemd160.Size]...)
	b = append(b, checksum(b)...)
	return base58.Encode(b)
}

// parsePubKey parses the serialized public key, which may be in either the
// compressed or uncompressed format, as a secp256k1 point.
func parsePubKey(serializedPubKey []byte) (*secp256k1.PublicKey, error) {
	pubKey, err := secp256k1.ParsePubKey(serializedPubKey)
	if err != nil {
		str := fmt.Sprintf("failed to parse public key: %v", err)
		return nil, makeError(ErrInvalidPubKey, str)
	}
	return pubKey, nil
}

// witnessV0KeyHashScript returns the version 0 witness program script for the
// given pubkey hash.  Wrapping this script in P2SH yields the wrapped witness
// (P2SH-P2WPKH) address form.
func witnessV0KeyHashScript(keyHash []byte) []byte {
	script := make([]byte, 0, 2+ripemd160.Size)
	script = append(script, op0, opData20)
	return append(script, keyHash[:ripemd160.Size]...)
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	net  AddressParams
	hash [ripemd160.Size]byte
}

// Ensure AddressPubKeyHash implements the Address interface.
var _ Address = (*AddressPubKeyHash)(nil)

// NewAddressPubKeyHash returns a new AddressPubKeyHash.  pkHash must be 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, net AddressParams) (*AddressPubKeyHash, error) {
	if len(pkHash) != ripemd160.Size {
		str := fmt.Sprintf("pubkey hash must be %d bytes", ripemd160.Size)
		return nil, makeError(ErrInvalidHashLen, str)
	}

	addr := &AddressPubKeyHash{net: net}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// NewAddressPubKey returns the pay-to-pubkey-hash (legacy) address for the
// serialized public key on the given network.  The hashed form is always that
// of the compressed public key, regardless of the serialization provided.
func NewAddressPubKey(serializedPubKey []byte, net AddressParams) (*AddressPubKeyHash, error) {
	pubKey, err := parsePubKey(serializedPubKey)
	if err != nil {
		return nil, err
	}
	return NewAddressPubKeyHash(Hash160(pubKey.SerializeCompressed()), net)
}

// String returns the Base58Check encoding of a pay-to-pubkey-hash address.
//
// Part of the Address interface.
func (a *AddressPubKeyHash) String() string {
	return encodeBase58Address(a.hash[:], a.net.AddrIDPubKeyHashV0())
}

// PaymentScript returns the script to pay a transaction output to the
// address:
//
//	OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
//
// Part of the Address interface.
func (a *AddressPubKeyHash) PaymentScript() []byte {
	script := make([]byte, 0, 5+ripemd160.Size)
	script = append(script, opDup, opHash160, opData20)
	script = append(script, a.hash[:]...)
	return append(script, opEqualVerify, opCheckSig)
}

// Net returns the parameters of the network the address belongs to.
//
// Part of the Address interface.
func (a *AddressPubKeyHash) Net() AddressParams {
	return a.net
}

// Hash160 returns the underlying array of the pubkey hash.  This can be
// useful when an array is more appropriate than a slice (for example, when
// used as map keys).
func (a *AddressPubKeyHash) Hash160() *[ripemd160.Size]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	net  AddressParams
	hash [ripemd160.Size]byte
}

// Ensure AddressScriptHash implements the Address interface.
var _ Address = (*AddressScriptHash)(nil)

// NewAddressScriptHashFromHash returns a new AddressScriptHash.  scriptHash
// must be 20 bytes.
func NewAddressScriptHashFromHash(scriptHash []byte, net AddressParams) (*AddressScriptHash, error) {
	if len(scriptHash) != ripemd160.Size {
		str := fmt.Sprintf("script hash must be %d bytes", ripemd160.Size)
		return nil, makeError(ErrInvalidHashLen, str)
	}

	addr := &AddressScriptHash{net: net}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// NewAddressScriptHash returns a new AddressScriptHash for the given redeem
// script.
func NewAddressScriptHash(redeemScript []byte, net AddressParams) (*AddressScriptHash, error) {
	return NewAddressScriptHashFromHash(Hash160(redeemScript), net)
}

// NewAddressScriptHashWrappedWitness returns the wrapped witness
// (P2SH-P2WPKH) address for the serialized public key on the given network:
// the version 0 witness program for the compressed pubkey hash is used as the
// redeem script of a pay-to-script-hash address.
func NewAddressScriptHashWrappedWitness(serializedPubKey []byte, net AddressParams) (*AddressScriptHash, error) {
	pubKey, err := parsePubKey(serializedPubKey)
	if err != nil {
		return nil, err
	}
	keyHash := Hash160(pubKey.SerializeCompressed())
	return NewAddressScriptHash(witnessV0KeyHashScript(keyHash), net)
}

// String returns the Base58Check encoding of a pay-to-script-hash address.
//
// Part of the Address interface.
func (a *AddressScriptHash) String() string {
	return encodeBase58Address(a.hash[:], a.net.AddrIDScriptHashV0())
}

// PaymentScript returns the script to pay a transaction output to the
// address:
//
//	OP_HASH160 <20-byte hash> OP_EQUAL
//
// Part of the Address interface.
func (a *AddressScriptHash) PaymentScript() []byte {
	script := make([]byte, 0, 3+ripemd160.Size)
	script = append(script, opHash160, opData20)
	script = append(script, a.hash[:]...)
	return append(script, opEqual)
}

// Net returns the parameters of the network the address belongs to.
//
// Part of the Address interface.
func (a *AddressScriptHash) Net() AddressParams {
	return a.net
}

// Hash160 returns the underlying array of the script hash.  This can be
// useful when an array is more appropriate than a slice (for example, when
// used as map keys).
func (a *AddressScriptHash) Hash160() *[ripemd160.Size]byte {
	return &a.hash
}

// AddressWitnessProgram is an Address for a native segregated witness
// program.
type AddressWitnessProgram struct {
	net     AddressParams
	version byte
	program []byte
}

// Ensure AddressWitnessProgram implements the Address interface.
var _ Address = (*AddressWitnessProgram)(nil)

// NewAddressWitnessProgram returns a new AddressWitnessProgram for the given
// witness version and program.  The version must not exceed 16, the program
// must be between 2 and 40 bytes, and a version 0 program must be exactly 20
// or 32 bytes.
func NewAddressWitnessProgram(version byte, program []byte, net AddressParams) (*AddressWitnessProgram, error) {
	if version > maxWitnessVersion {
		str := fmt.Sprintf("witness version %d exceeds max allowed %d",
			version, maxWitnessVersion)
		return nil, makeError(ErrInvalidWitnessVersion, str)
	}
	if len(program) < minWitnessProgramLen ||
		len(program) > maxWitnessProgramLen {

		str := fmt.Sprintf("witness program length %d is outside allowed "+
			"range [%d, %d]", len(program), minWitnessProgramLen,
			maxWitnessProgramLen)
		return nil, makeError(ErrInvalidWitnessProgramLen, str)
	}
	if version == 0 && len(program) != 20 && len(program) != 32 {
		str := fmt.Sprintf("version 0 witness program length %d is not 20 "+
			"or 32", len(program))
		return nil, makeError(ErrInvalidWitnessV0ProgramLen, str)
	}

	prog := make([]byte, len(program))
	copy(prog, program)
	return &AddressWitnessProgram{net: net, version: version, program: prog}, nil
}

// NewAddressWitnessPubKey returns the native witness (P2WPKH) address for the
// serialized public key on the given network: a version 0 witness program
// carrying the compressed pubkey hash.
func NewAddressWitnessPubKey(serializedPubKey []byte, net AddressParams) (*AddressWitnessProgram, error) {
	pubKey, err := parsePubKey(serializedPubKey)
	if err != nil {
		return nil, err
	}
	keyHash := Hash160(pubKey.SerializeCompressed())
	return NewAddressWitnessProgram(0, keyHash, net)
}

// String returns the bech32 encoding of the witness program using the
// human-readable part of the network the address belongs to.  The witness
// version is the first 5-bit group, followed by the program converted from
// 8-bit to 5-bit groups.
//
// Part of the Address interface.
func (a *AddressWitnessProgram) String() string {
	// Converting 8-bit bytes to padded 5-bit groups cannot fail, and
	// encoding only fails for prefixes and payloads the constructor
	// validation excludes, so a failure here means the address was not
	// built through this package.
	converted, err := bech32.ConvertBits(a.program, 8, 5, true)
	if err != nil {
		panic(err)
	}
	data := make([]byte, 0, 1+len(converted))
	data = append(data, a.version)
	data = append(data, converted...)
	encoded, err := bech32.Encode(a.net.Bech32HRP(), data)
	if err != nil {
		panic(err)
	}
	return encoded
}

// PaymentScript returns the script to pay a transaction output to the
// address:
//
//	<version opcode> <program>
//
// with the witness version pushed as a small integer opcode and the program
// pushed as data.
//
// Part of the Address interface.
func (a *AddressWitnessProgram) PaymentScript() []byte {
	versionOp := byte(op0)
	if a.version > 0 {
		versionOp = op1 + a.version - 1
	}
	script := make([]byte, 0, 2+len(a.program))
	script = append(script, versionOp, byte(len(a.program)))
	return append(script, a.program...)
}

// Net returns the parameters of the network the address belongs to.
//
// Part of the Address interface.
func (a *AddressWitnessProgram) Net() AddressParams {
	return a.net
}

// WitnessVersion returns the witness version of the address.
func (a *AddressWitnessProgram) WitnessVersion() byte {
	return a.version
}

// Program returns a copy of the witness program of the address.
func (a *AddressWitnessProgram) Program() []byte {
	program := make([]byte, len(a.program))
	copy(program, a.program)
	return program
}

// base58AddrID describes the network and address kind a Base58Check version
// byte decodes to.
type base58AddrID struct {
	net          *chaincfg.Params
	isScriptHash bool
}

// base58AddrIDs maps the Base58Check version byte of an address to the
// network and address kind it identifies.  Decoding dispatches on this table,
// so supporting another network is a data change only.
var base58AddrIDs = map[byte]base58AddrID{
	0x00: {chaincfg.BTCMainNetParams(), false},
	0x05: {chaincfg.BTCMainNetParams(), true},
	0x30: {chaincfg.LTCMainNetParams(), false},
	0x32: {chaincfg.LTCMainNetParams(), true},
	0x3a: {chaincfg.LTCTestNetParams(), true},
	0x6f: {chaincfg.BTCTestNetParams(), false},
	0xc4: {chaincfg.BTCTestNetParams(), true},
}

// bech32Network returns the network parameters registered for the
// human-readable prefix of the provided address, along with whether such a
// prefix was present at all.  The prefix is everything before the last
// separator character per [BIP173].
func bech32Network(addr string) (*chaincfg.Params, bool) {
	sep := strings.LastIndexByte(addr, '1')
	if sep < 1 {
		return nil, false
	}
	return chaincfg.ParamsForCoin(addr[:sep])
}

// DecodeAddress decodes the string encoding of an address and returns the
// Address if it is a valid encoding for a registered network.
//
// When the string carries a recognizable bech32 human-readable prefix it is
// decoded as a native witness address; otherwise it is decoded as a
// Base58Check address whose version byte selects both the network and the
// address kind.  A string that merely resembles a bech32 address fails bech32
// validation with a typed error rather than falling through to Base58Check.
func DecodeAddress(addr string) (Address, error) {
	if net, ok := bech32Network(addr); ok {
		return decodeSegWitAddress(addr, net)
	}
	return decodeBase58Address(addr)
}

// decodeSegWitAddress decodes the bech32 encoding of a native witness address
// for the already-resolved network.
func decodeSegWitAddress(addr string, net *chaincfg.Params) (Address, error) {
	_, data, err := bech32.Decode(addr)
	if err != nil {
		var checksumErr bech32.ErrInvalidChecksum
		if errors.As(err, &checksumErr) {
			str := fmt.Sprintf("failed to decode address %q: %v", addr, err)
			return nil, makeError(ErrBadAddressChecksum, str)
		}
		str := fmt.Sprintf("failed to decode address %q: %v", addr, err)
		return nil, makeError(ErrMalformedAddress, str)
	}
	if len(data) == 0 {
		str := fmt.Sprintf("address %q decoded data is empty", addr)
		return nil, makeError(ErrEmptyBech32Payload, str)
	}

	// The first 5-bit group is the witness version and the remaining groups
	// are the witness program converted back to 8-bit bytes.
	version := data[0]
	if version > maxWitnessVersion {
		str := fmt.Sprintf("address %q has witness version %d which "+
			"exceeds max allowed %d", addr, version, maxWitnessVersion)
		return nil, makeError(ErrInvalidWitnessVersion, str)
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		str := fmt.Sprintf("failed to convert witness program of address "+
			"%q: %v", addr, err)
		return nil, makeError(ErrMalformedAddress, str)
	}
	if len(program) < minWitnessProgramLen ||
		len(program) > maxWitnessProgramLen {

		str := fmt.Sprintf("address %q witness program length %d is "+
			"outside allowed range [%d, %d]", addr, len(program),
			minWitnessProgramLen, maxWitnessProgramLen)
		return nil, makeError(ErrInvalidWitnessProgramLen, str)
	}
	if version == 0 && len(program) != 20 && len(program) != 32 {
		str := fmt.Sprintf("address %q version 0 witness program length "+
			"%d is not 20 or 32", addr, len(program))
		return nil, makeError(ErrInvalidWitnessV0ProgramLen, str)
	}

	return &AddressWitnessProgram{net: net, version: version, program: program}, nil
}

// decodeBase58Address decodes the Base58Check encoding of a legacy or wrapped
// witness address.  The version byte of the decoded payload selects both the
// network and the address kind via the base58AddrIDs table.
func decodeBase58Address(addr string) (Address, error) {
	// The provided address must not be larger than the maximum possible
	// size.
	//
	// A decoded address consists of 1 byte for the version, 20 bytes for the
	// hash, and 4 bytes for the checksum.  Since the encoding converts from
	// base256 to base58, the max possible number of bytes of output per
	// input byte is log_58(256) ~= 1.37, so 25 decoded bytes can never
	// encode to more than 35 characters.  The historically enforced bound of
	// 50 characters is kept as a cheap fast-path guard; the decoded length
	// check below remains authoritative.
	const maxBase58AddrLen = 50
	if len(addr) > maxBase58AddrLen {
		str := fmt.Sprintf("failed to decode address %q...: len %d exceeds "+
			"max allowed %d", addr[:maxBase58AddrLen], len(addr),
			maxBase58AddrLen)
		return nil, makeError(ErrInvalidAddrLen, str)
	}

	// The decoded form must at least be able to contain a checksum.  Note
	// that base58 decoding yields no bytes at all for input containing
	// characters outside the base58 alphabet.
	decoded := base58.Decode(addr)
	if len(decoded) < 5 {
		str := fmt.Sprintf("failed to decode address %q: too short", addr)
		return nil, makeError(ErrInvalidAddrLen, str)
	}

	// Verify and strip the trailing 4-byte checksum.
	payload := decoded[:len(decoded)-4]
	cksum := decoded[len(decoded)-4:]
	if !bytes.Equal(checksum(payload), cksum) {
		str := fmt.Sprintf("address %q failed the checksum check", addr)
		return nil, makeError(ErrBadAddressChecksum, str)
	}

	// The payload is exactly one version byte followed by a 20-byte hash.
	if len(payload) != 1+ripemd160.Size {
		str := fmt.Sprintf("address %q decoded to %d bytes, expected %d",
			addr, len(payload), 1+ripemd160.Size)
		return nil, makeError(ErrInvalidAddrLen, str)
	}

	id, ok := base58AddrIDs[payload[0]]
	if !ok {
		str := fmt.Sprintf("address %q has unknown version byte %#02x",
			addr, payload[0])
		return nil, makeError(ErrUnknownAddrVersion, str)
	}
	if id.isScriptHash {
		return NewAddressScriptHashFromHash(payload[1:], id.net)
	}
	return NewAddressPubKeyHash(payload[1:], id.net)
}

// AddressLike parses the target address and returns the address of the same
// kind, on the same network, for the provided serialized public key.  This
// preserves the address family (legacy, wrapped witness, or native witness)
// of an existing account address when deriving an address for a new key.
func AddressLike(target string, serializedPubKey []byte) (Address, error) {
	ref, err := DecodeAddress(target)
	if err != nil {
		return nil, err
	}

	switch ref.(type) {
	case *AddressPubKeyHash:
		return NewAddressPubKey(serializedPubKey, ref.Net())
	case *AddressScriptHash:
		return NewAddressScriptHashWrappedWitness(serializedPubKey, ref.Net())
	case *AddressWitnessProgram:
		return NewAddressWitnessPubKey(serializedPubKey, ref.Net())
	}

	str := fmt.Sprintf("unsupported address type %T", ref)
	return nil, makeError(ErrMalformedAddress, str)
}

// DefaultAddress returns the address used when no explicit script kind is
// requested for the coin: the wrapped witness (P2SH-P2WPKH) form.  It fails
// with ErrUnsupportedChain when the coin identifier is not registered.
func DefaultAddress(serializedPubKey []byte, coin string) (Address, error) {
	net, ok := chaincfg.ParamsForCoin(coin)
	if !ok {
		str := fmt.Sprintf("coin %q is not registered", coin)
		return nil, makeError(ErrUnsupportedChain, str)
	}
	return NewAddressScriptHashWrappedWitness(serializedPubKey, net)
}

// Compare orders two addresses first by their coin identifier and then by
// their canonical text encoding.  The result is suitable for deduplicating
// and sorting addresses across networks, including networks that share
// Base58Check version bytes.
func Compare(a, b Address) int {
	if c := strings.Compare(a.Net().Coin(), b.Net().Coin()); c != 0 {
		return c
	}
	return strings.Compare(a.String(), b.String())
}
