// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/base58"
	"github.com/decred/dcrd/crypto/rand"
	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// RecommendedSeedLen is the recommended length in bytes for a seed to a
	// master node.
	RecommendedSeedLen = 32 // 256 bits

	// HardenedKeyStart is the index at which a hardened key starts.  Each
	// extended key has 2^31 normal child keys and 2^31 hardened child keys.
	// Thus the range for normal child keys is [0, 2^31 - 1] and the range
	// for hardened child keys is [2^31, 2^32 - 1].
	HardenedKeyStart = 0x80000000 // 2^31

	// MinSeedBytes is the minimum number of bytes allowed for a seed to a
	// master node.
	MinSeedBytes = 16 // 128 bits

	// MaxSeedBytes is the maximum number of bytes allowed for a seed to a
	// master node.
	MaxSeedBytes = 64 // 512 bits

	// serializedKeyLen is the length of a serialized extended key without
	// the checksum.  It consists of 4 bytes version, 1 byte depth, 4 bytes
	// fingerprint, 4 bytes child number, 32 bytes chain code, and 33 bytes
	// key data.
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33 // 78 bytes

	// maxUint8 is the maximum positive integer which can be serialized in a
	// uint8.
	maxUint8 = 1<<8 - 1
)

// masterKey is the master key used along with a random seed used to generate
// the master node in the hierarchical tree.
var masterKey = []byte("Bitcoin seed")

// NetworkParams defines an interface that is used throughout the package to
// access the hierarchical deterministic extended key version prefixes for the
// network an extended key is serialized for.
type NetworkParams interface {
	// HDPrivKeyVersion returns the extended private key version bytes.
	HDPrivKeyVersion() [4]byte

	// HDPubKeyVersion returns the extended public key version bytes.
	HDPubKeyVersion() [4]byte
}

// hash160 returns ripemd160(sha256(b)).
func hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	hasher := ripemd160.New()
	hasher.Write(sum[:])
	return hasher.Sum(nil)
}

// ExtendedKey houses all the information needed to support a hierarchical
// deterministic extended key.  See the package overview documentation for
// more details on how to use extended keys.
type ExtendedKey struct {
	privVer   [4]byte // version bytes for extended priv keys
	pubVer    [4]byte // version bytes for extended pub keys
	key       []byte  // This will be the pubkey for extended pub keys
	pubKey    []byte  // This will only be set for extended priv keys
	chainCode []byte
	parentFP  []byte
	childNum  uint32
	depth     uint8
	isPrivate bool
}

// newExtendedKey returns a new instance of an extended key with the given
// fields.  No error checking is performed here as it's only intended to be a
// convenience method used to create a populated struct.
func newExtendedKey(privVer, pubVer [4]byte, key, chainCode, parentFP []byte,
	depth uint8, childNum uint32, isPrivate bool) *ExtendedKey {

	return &ExtendedKey{
		privVer:   privVer,
		pubVer:    pubVer,
		key:       key,
		chainCode: chainCode,
		parentFP:  parentFP,
		childNum:  childNum,
		depth:     depth,
		isPrivate: isPrivate,
	}
}

// NewExtendedKey returns a new instance of an extended key with the given
// fields.  It is primarily intended for use by applications that serialize
// extended keys in a custom format, such as a wallet database, since no
// error checking is performed on the provided fields.
func NewExtendedKey(net NetworkParams, key, chainCode, parentFP []byte,
	depth uint8, childNum uint32, isPrivate bool) *ExtendedKey {

	return newExtendedKey(net.HDPrivKeyVersion(), net.HDPubKeyVersion(), key,
		chainCode, parentFP, depth, childNum, isPrivate)
}

// pubKeyBytes returns bytes for the serialized compressed public key
// associated with this extended key in an efficient manner including memoization
// as necessary.
//
// When the extended key is already a public key, the key is simply returned as
// is since it is already in the correct form.  However, when the extended key
// is a private key, the public key will be calculated and memoized so future
// accesses can simply return the cached result.
func (k *ExtendedKey) pubKeyBytes() []byte {
	// Just return the key if it's already an extended public key.
	if !k.isPrivate {
		return k.key
	}

	// This is a private extended key, so calculate and memoize the public
	// key if needed.
	if len(k.pubKey) == 0 {
		privKey := secp256k1.PrivKeyFromBytes(k.key)
		k.pubKey = privKey.PubKey().SerializeCompressed()
	}

	return k.pubKey
}

// IsPrivate returns whether or not the extended key is a private extended
// key.
//
// A private extended key can be used to derive both hardened and non-hardened
// child private and public extended keys.  A public extended key can only be
// used to derive non-hardened child public extended keys.
func (k *ExtendedKey) IsPrivate() bool {
	return k.isPrivate
}

// Depth returns the current derivation level with respect to the root.
//
// The root key has depth zero, and the field has a maximum of 255 due to how
// depth is serialized.
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// ParentFingerprint returns a fingerprint of the parent extended key from
// which this one was derived.
func (k *ExtendedKey) ParentFingerprint() uint32 {
	return binary.BigEndian.Uint32(k.parentFP)
}

// ChildNum returns the child number used to derive this extended key from its
// parent.  Hardened children are offset by HardenedKeyStart.
func (k *ExtendedKey) ChildNum() uint32 {
	return k.childNum
}

// Child returns a derived child extended key at the given index.  When this
// extended key is a private extended key (as determined by the IsPrivate
// function), a private extended key will be derived.  Otherwise, the derived
// extended key will also be a public extended key.
//
// When the index is greater than or equal to the HardenedKeyStart constant, the
// derived extended key will be a hardened extended key.  It is only possible
// to derive a hardened extended key from a private extended key.  Attempting
// to do so from a public extended key will result in ErrDeriveHardFromPublic.
//
// A small percentage of indexes result in invalid child extended keys, so the
// caller must detect ErrInvalidChild and simply ignore the index in that case.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	// Prevent derivation of children beyond the max allowed depth.
	if k.depth == maxUint8 {
		str := "cannot derive a child key with more than 255 indices in " +
			"its path"
		return nil, makeError(ErrMaxDepthExceeded, str)
	}

	// There are four scenarios that could happen here:
	// 1) Private extended key -> Hardened child private extended key
	// 2) Private extended key -> Non-hardened child private extended key
	// 3) Public extended key -> Non-hardened child public extended key
	// 4) Public extended key -> Hardened child public extended key (INVALID!)

	// Case #4 is invalid, so error out early.
	// A hardened child extended key may not be created from a public
	// extended key.
	isChildHardened := i >= HardenedKeyStart
	if !k.isPrivate && isChildHardened {
		str := "cannot derive a hardened key from a public key"
		return nil, makeError(ErrDeriveHardFromPublic, str)
	}

	// The data used to derive the child key depends on whether or not the
	// child is hardened per [BIP32].
	//
	// For hardened children:
	//   0x00 || ser256(parentKey) || ser32(i)
	//
	// For normal children:
	//   serP(parentPubKey) || ser32(i)
	keyLen := 33
	data := make([]byte, keyLen+4)
	if isChildHardened {
		copy(data[1:], k.key)
	} else {
		copy(data, k.pubKeyBytes())
	}
	binary.BigEndian.PutUint32(data[keyLen:], i)

	// Take the HMAC-SHA512 of the current key's chain code and the derived
	// data:
	//   I = HMAC-SHA512(Key = chainCode, Data = data)
	hmac512 := hmac.New(sha512.New, k.chainCode)
	hmac512.Write(data)
	ilr := hmac512.Sum(nil)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = intermediate key used to derive the child
	//   Ir = child chain code
	il := ilr[:len(ilr)/2]
	childChainCode := ilr[len(ilr)/2:]

	// Both derived public or private keys rely on treating the left 32-byte
	// sequence calculated above (Il) as a 256-bit integer that must be
	// within the valid range for a secp256k1 private key.  There is an
	// extremely tiny chance (< 1 in 2^127) this condition will not hold, and
	// in that case, a child extended key can't be created for this index and
	// the caller should simply increment to the next index.
	var ilScalar secp256k1.ModNScalar
	if overflow := ilScalar.SetByteSlice(il); overflow || ilScalar.IsZero() {
		str := fmt.Sprintf("invalid intermediate key at index %d", i)
		return nil, makeError(ErrInvalidChild, str)
	}

	// The algorithm used to derive the child key depends on whether or not
	// a private or public child is being derived.
	//
	// For private children:
	//   childKey = parse256(Il) + parentKey
	//
	// For public children:
	//   childKey = serP(point(parse256(Il)) + parentKey)
	var isPrivate bool
	var childKey []byte
	if k.isPrivate {
		// Add the parent private key to the intermediate private key to
		// derive the final child key.
		var keyScalar secp256k1.ModNScalar
		keyScalar.SetByteSlice(k.key)
		ilScalar.Add(&keyScalar)
		if ilScalar.IsZero() {
			str := fmt.Sprintf("invalid child key at index %d", i)
			return nil, makeError(ErrInvalidChild, str)
		}
		childKeyBytes := ilScalar.Bytes()
		childKey = childKeyBytes[:]
		isPrivate = true
	} else {
		// Calculate the corresponding intermediate public key for the
		// intermediate private key and add it to the parent public key to
		// derive the final child key.
		var ilPoint secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(&ilScalar, &ilPoint)

		pubKey, err := secp256k1.ParsePubKey(k.key)
		if err != nil {
			return nil, err
		}
		var pubPoint, childPoint secp256k1.JacobianPoint
		pubKey.AsJacobian(&pubPoint)
		secp256k1.AddNonConst(&ilPoint, &pubPoint, &childPoint)
		if (childPoint.X.IsZero() && childPoint.Y.IsZero()) ||
			childPoint.Z.IsZero() {

			str := fmt.Sprintf("invalid child key at index %d", i)
			return nil, makeError(ErrInvalidChild, str)
		}
		childPoint.ToAffine()
		childPubKey := secp256k1.NewPublicKey(&childPoint.X, &childPoint.Y)
		childKey = childPubKey.SerializeCompressed()
	}

	// The fingerprint of the parent for the derived child is the first 4
	// bytes of the RIPEMD160(SHA256(parentPubKey)).
	parentFP := hash160(k.pubKeyBytes())[:4]
	return newExtendedKey(k.privVer, k.pubVer, childKey, childChainCode,
		parentFP, k.depth+1, i, isPrivate), nil
}

// Neuter returns a new extended public key from this extended private key.
// The same extended key will be returned unaltered when it is already an
// extended public key.
//
// As the name implies, an extended public key does not have access to the
// private key, so it is not capable of signing transactions or deriving child
// extended private keys.  However, it is capable of deriving further child
// extended public keys.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	// Already an extended public key.
	if !k.isPrivate {
		return k
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	return newExtendedKey(k.privVer, k.pubVer, k.pubKeyBytes(), k.chainCode,
		k.parentFP, k.depth, k.childNum, false)
}

// ECPubKey converts the extended key to a secp256k1 public key and returns
// it.
func (k *ExtendedKey) ECPubKey() (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(k.pubKeyBytes())
}

// ECPrivKey converts the extended key to a secp256k1 private key and returns
// it.  As you might imagine this is only possible if the extended key is a
// private extended key (as determined by the IsPrivate function).  The
// ErrNotPrivExtKey error will be returned if this function is called on a
// public extended key.
func (k *ExtendedKey) ECPrivKey() (*secp256k1.PrivateKey, error) {
	if !k.isPrivate {
		str := "unable to create private keys from a public extended key"
		return nil, makeError(ErrNotPrivExtKey, str)
	}

	return secp256k1.PrivKeyFromBytes(k.key), nil
}

// SerializedPubKey returns the compressed serialization of the public key
// associated with the extended key.
func (k *ExtendedKey) SerializedPubKey() []byte {
	pubKey := k.pubKeyBytes()
	serialized := make([]byte, len(pubKey))
	copy(serialized, pubKey)
	return serialized
}

// serialize returns the full serialization of the extended key using the
// given version prefix, including the trailing 4-byte double SHA256 checksum.
func (k *ExtendedKey) serialize(version [4]byte) []byte {
	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	serializedBytes = append(serializedBytes, version[:]...)
	serializedBytes = append(serializedBytes, k.depth)
	serializedBytes = append(serializedBytes, k.parentFP...)

	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.childNum)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.chainCode...)
	if k.isPrivate {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = append(serializedBytes, k.key...)
	} else {
		serializedBytes = append(serializedBytes, k.pubKeyBytes()...)
	}

	checkSum := chainhash.DoubleHashB(serializedBytes)[:4]
	return append(serializedBytes, checkSum...)
}

// String returns the extended key as a base58-encoded human-readable string
// using the version prefix the key was created with.
func (k *ExtendedKey) String() string {
	if len(k.key) == 0 {
		return "zeroed extended key"
	}

	version := k.pubVer
	if k.isPrivate {
		version = k.privVer
	}
	return base58.Encode(k.serialize(version))
}

// StringFor returns the extended key as a base58-encoded human-readable
// string serialized with the extended key version prefix of the given
// network in place of the one the key was created with.  The result is what
// wallets of that network's ecosystem expect for an extended key.
func (k *ExtendedKey) StringFor(net NetworkParams) string {
	if len(k.key) == 0 {
		return "zeroed extended key"
	}

	version := net.HDPubKeyVersion()
	if k.isPrivate {
		version = net.HDPrivKeyVersion()
	}
	return base58.Encode(k.serialize(version))
}

// Zero manually clears all fields and bytes in the extended key.  This can be
// used to explicitly clear key material from memory for enhanced security
// against memory scraping.  This function only clears this particular key and
// not any children that have already been derived.
func (k *ExtendedKey) Zero() {
	zero(k.key)
	zero(k.pubKey)
	zero(k.chainCode)
	zero(k.parentFP)
	k.privVer = [4]byte{}
	k.pubVer = [4]byte{}
	k.key = nil
	k.pubKey = nil
	k.chainCode = nil
	k.parentFP = nil
	k.depth = 0
	k.childNum = 0
	k.isPrivate = false
}

// zero sets all bytes in the passed slice to zero.  This is used to
// explicitly clear private key material from memory.
func zero(b []byte) {
	for i := range b {
		b[i] = 0x00
	}
}

// NewMaster creates a new master node for use in creating a hierarchical
// deterministic key chain.  The seed must be between 128 and 512 bits and
// should be generated by a cryptographically secure random generation source.
//
// NOTE: There is an extremely small chance (< 1 in 2^127) the provided seed
// will derive to an unusable secret key.  The ErrUnusableSeed error will be
// returned if this should occur, so the caller must check for it and generate
// a new seed accordingly.
func NewMaster(seed []byte, net NetworkParams) (*ExtendedKey, error) {
	// Per [BIP32], the seed must be in range [MinSeedBytes, MaxSeedBytes].
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		str := fmt.Sprintf("seed length must be between %d and %d bits",
			MinSeedBytes*8, MaxSeedBytes*8)
		return nil, makeError(ErrInvalidSeedLen, str)
	}

	// First take the HMAC-SHA512 of the master key and the seed data:
	//   I = HMAC-SHA512(Key = "Bitcoin seed", Data = S)
	hmac512 := hmac.New(sha512.New, masterKey)
	hmac512.Write(seed)
	lr := hmac512.Sum(nil)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = master secret key
	//   Ir = master chain code
	secretKey := lr[:len(lr)/2]
	chainCode := lr[len(lr)/2:]

	// Ensure the key is usable.
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(secretKey); overflow || scalar.IsZero() {
		str := "the provided seed is unusable"
		return nil, makeError(ErrUnusableSeed, str)
	}

	parentFP := []byte{0x00, 0x00, 0x00, 0x00}
	return newExtendedKey(net.HDPrivKeyVersion(), net.HDPubKeyVersion(),
		secretKey, chainCode, parentFP, 0, 0, true), nil
}

// NewKeyFromString returns a new extended key instance from a base58-encoded
// extended key serialized for the given network.  ErrWrongNetwork is returned
// when the encoded version prefix does not match either of the network's
// extended key version prefixes.
func NewKeyFromString(key string, net NetworkParams) (*ExtendedKey, error) {
	// The base58-decoded extended key must consist of a serialized payload
	// plus an additional 4 bytes for the checksum.
	decoded := base58.Decode(key)
	if len(decoded) != serializedKeyLen+4 {
		str := "the provided serialized extended key length is invalid"
		return nil, makeError(ErrInvalidKeyLen, str)
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := decoded[:len(decoded)-4]
	checkSum := decoded[len(decoded)-4:]
	expectedCheckSum := chainhash.DoubleHashB(payload)[:4]
	for i := range checkSum {
		if checkSum[i] != expectedCheckSum[i] {
			str := "bad extended key checksum"
			return nil, makeError(ErrBadChecksum, str)
		}
	}

	// Ensure the version prefix encodes a key for the provided network and
	// deserialize the remaining payload fields.
	var version [4]byte
	copy(version[:], payload[:4])
	privVer, pubVer := net.HDPrivKeyVersion(), net.HDPubKeyVersion()
	if version != privVer && version != pubVer {
		str := fmt.Sprintf("extended key version prefix %x is not for the "+
			"provided network", version)
		return nil, makeError(ErrWrongNetwork, str)
	}
	depth := payload[4]
	parentFP := payload[5:9]
	childNum := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate {
		// Ensure the private key is valid.  It must be within the range
		// of the order of the secp256k1 curve and not be 0.
		keyData = keyData[1:]
		var scalar secp256k1.ModNScalar
		if overflow := scalar.SetByteSlice(keyData); overflow || scalar.IsZero() {
			str := "unusable key"
			return nil, makeError(ErrUnusableSeed, str)
		}
	} else {
		// Ensure the public key parses correctly and is actually on the
		// secp256k1 curve.
		_, err := secp256k1.ParsePubKey(keyData)
		if err != nil {
			return nil, err
		}
	}

	return newExtendedKey(privVer, pubVer, keyData, chainCode, parentFP,
		depth, childNum, isPrivate), nil
}

// GenerateSeed returns a cryptographically secure random seed that can be
// used as the input for the NewMaster function to generate a new master node.
//
// The length is in bytes and it must be between 16 and 64 (128 to 512 bits).
// The recommended length is 32 (256 bits) as defined by the
// RecommendedSeedLen constant.
func GenerateSeed(length uint8) ([]byte, error) {
	// Per [BIP32], the seed must be in range [MinSeedBytes, MaxSeedBytes].
	if length < MinSeedBytes || length > MaxSeedBytes {
		str := fmt.Sprintf("seed length must be between %d and %d bits",
			MinSeedBytes*8, MaxSeedBytes*8)
		return nil, makeError(ErrInvalidSeedLen, str)
	}

	buf := make([]byte, length)
	rand.Read(buf)
	return buf, nil
}
