// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"
	"sync"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/scrypt"

	"github.com/forkwallet/forkwallet/chaincfg"
	"github.com/forkwallet/forkwallet/fwutil"
	"github.com/forkwallet/forkwallet/hdkeychain"
)

const (
	// Parameters for the scrypt key derivation used to seal the seed.  N is
	// intentionally interactive-login strength since unsealing happens on
	// every signing operation.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	// sealKeyLen is the AES-256 key length derived from the password.
	sealKeyLen = 32

	// sealSaltLen is the length of the random scrypt salt.
	sealSaltLen = 32

	// compactSigLen is the length of a recoverable signature: 32 bytes R,
	// 32 bytes S, and one recovery id byte.
	compactSigLen = 65
)

// Account describes a derived signing account for a single chain.
type Account struct {
	// Coin is the canonical coin identifier the account was registered
	// under.
	Coin string

	// Address is the default receiving address of the account.  It is empty
	// for chains whose address encoding is handled outside this module.
	Address string

	// DerivationPath locates the account's key below the keystore's master
	// key.
	DerivationPath string
}

// sealedSeed is the password-sealed master seed.  The plaintext seed is only
// ever materialized transiently while deriving or signing.
type sealedSeed struct {
	salt       []byte
	nonce      []byte
	ciphertext []byte
}

// Keystore is a password-sealed hierarchical deterministic keystore.  A
// single master seed backs any number of per-chain accounts, each located by
// a derivation path.  All methods are safe for concurrent access.
type Keystore struct {
	mtx      sync.RWMutex
	seed     sealedSeed
	accounts map[string]Account
}

// sealSeed encrypts the seed with a key derived from the password.
func sealSeed(seed []byte, password string) (sealedSeed, error) {
	salt := make([]byte, sealSaltLen)
	rand.Read(salt)

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP,
		sealKeyLen)
	if err != nil {
		return sealedSeed{}, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return sealedSeed{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return sealedSeed{}, err
	}

	nonce := make([]byte, aead.NonceSize())
	rand.Read(nonce)
	return sealedSeed{
		salt:       salt,
		nonce:      nonce,
		ciphertext: aead.Seal(nil, nonce, seed, nil),
	}, nil
}

// open decrypts the sealed seed with the given password.  The caller must
// zero the returned seed when done with it.
func (s *sealedSeed) open(password string) ([]byte, error) {
	if password == "" {
		str := "a password is required to unlock the keystore"
		return nil, makeError(ErrMissingPassword, str)
	}

	key, err := scrypt.Key([]byte(password), s.salt, scryptN, scryptR,
		scryptP, sealKeyLen)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	seed, err := aead.Open(nil, s.nonce, s.ciphertext, nil)
	if err != nil {
		str := "the provided password is incorrect"
		return nil, makeError(ErrWrongPassword, str)
	}
	return seed, nil
}

// zero sets all bytes in the passed slice to zero.  This is used to
// explicitly clear seed and key material from memory.
func zero(b []byte) {
	for i := range b {
		b[i] = 0x00
	}
}

// NewFromSeed returns a keystore sealing the given master seed under the
// password.  The seed must satisfy the hdkeychain seed length requirements.
func NewFromSeed(seed []byte, password string) (*Keystore, error) {
	if password == "" {
		str := "a password is required to create a keystore"
		return nil, makeError(ErrMissingPassword, str)
	}

	// Reject seeds the key derivation cannot use before sealing them.
	master, err := hdkeychain.NewMaster(seed, chaincfg.BTCMainNetParams())
	if err != nil {
		return nil, err
	}
	master.Zero()

	sealed, err := sealSeed(seed, password)
	if err != nil {
		return nil, err
	}
	return &Keystore{
		seed:     sealed,
		accounts: make(map[string]Account),
	}, nil
}

// NewFromMnemonic returns a keystore whose master seed is derived from the
// given BIP39 mnemonic phrase, sealed under the password.  The BIP39 seed is
// derived with an empty passphrase; the password only seals the keystore.
func NewFromMnemonic(mnemonic, password string) (*Keystore, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		str := "mnemonic phrase failed validation"
		return nil, makeError(ErrInvalidMnemonic, str)
	}
	seed := bip39.NewSeed(mnemonic, "")
	defer zero(seed)
	return NewFromSeed(seed, password)
}

// GenerateMnemonic returns a new 12-word BIP39 mnemonic phrase built from
// 128 bits of cryptographically secure entropy.
func GenerateMnemonic() (string, error) {
	entropy := make([]byte, 16)
	rand.Read(entropy)
	return bip39.NewMnemonic(entropy)
}

// deriveKey materializes the seed and derives the extended private key at the
// given path.  The extended key versions are fixed since keys never leave
// this package in serialized form.
func (ks *Keystore) deriveKey(password string, path []uint32) (*hdkeychain.ExtendedKey, error) {
	seed, err := ks.seed.open(password)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	key, err := hdkeychain.NewMaster(seed, chaincfg.BTCMainNetParams())
	if err != nil {
		return nil, err
	}
	for _, index := range path {
		child, err := key.Child(index)
		key.Zero()
		if err != nil {
			return nil, err
		}
		key = child
	}
	return key, nil
}

// DeriveAccount derives the key at the given path, builds the coin's default
// receiving address for it, and registers the resulting account under the
// coin identifier, replacing any previous registration.  The coin must be
// registered in the chaincfg registry; use RegisterAccount for chains whose
// address encoding lives elsewhere.
func (ks *Keystore) DeriveAccount(coin, path, password string) (Account, error) {
	indices, err := ParseDerivationPath(path)
	if err != nil {
		return Account{}, err
	}

	key, err := ks.deriveKey(password, indices)
	if err != nil {
		return Account{}, err
	}
	defer key.Zero()

	addr, err := fwutil.DefaultAddress(key.SerializedPubKey(), coin)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		Coin:           addr.Net().Coin(),
		Address:        addr.String(),
		DerivationPath: path,
	}
	ks.registerAccount(account)
	return account, nil
}

// RegisterAccount derives the key at the given path to prove the path and
// password are usable and registers an account for a chain whose address
// encoding is handled outside this module.  The account is stored with an
// empty address.
func (ks *Keystore) RegisterAccount(coin, path, password string) (Account, error) {
	indices, err := ParseDerivationPath(path)
	if err != nil {
		return Account{}, err
	}

	key, err := ks.deriveKey(password, indices)
	if err != nil {
		return Account{}, err
	}
	key.Zero()

	account := Account{
		Coin:           strings.ToUpper(coin),
		DerivationPath: path,
	}
	ks.registerAccount(account)
	return account, nil
}

// registerAccount stores the account under its coin identifier.
func (ks *Keystore) registerAccount(account Account) {
	ks.mtx.Lock()
	ks.accounts[strings.ToUpper(account.Coin)] = account
	ks.mtx.Unlock()

	log.Debugf("Registered account for %s at %s", account.Coin,
		account.DerivationPath)
}

// Account returns the account registered for the given coin identifier.
// Matching is case-insensitive.
func (ks *Keystore) Account(coin string) (Account, error) {
	ks.mtx.RLock()
	account, ok := ks.accounts[strings.ToUpper(coin)]
	ks.mtx.RUnlock()
	if !ok {
		str := fmt.Sprintf("no account for coin %q", coin)
		return Account{}, makeError(ErrAccountNotFound, str)
	}
	return account, nil
}

// SignRecoverable signs the 32-byte hash with the private key at the given
// derivation path and returns the 65-byte recoverable signature laid out as
// 32 bytes R, 32 bytes S, and a trailing recovery id byte.
func (ks *Keystore) SignRecoverable(path, password string, hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		str := fmt.Sprintf("hash to sign must be 32 bytes, got %d", len(hash))
		return nil, makeError(ErrInvalidHashLen, str)
	}

	indices, err := ParseDerivationPath(path)
	if err != nil {
		return nil, err
	}
	key, err := ks.deriveKey(password, indices)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	defer privKey.Zero()

	// SignCompact produces a header-first signature where the header byte
	// encodes the recovery id plus the compressed pubkey offset.  Rearrange
	// it to the R || S || recovery id layout.
	compact := ecdsa.SignCompact(privKey, hash, true)
	sig := make([]byte, 0, compactSigLen)
	sig = append(sig, compact[1:]...)
	sig = append(sig, compact[0]-27-4)
	return sig, nil
}
