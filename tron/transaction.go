// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tron signs TRON transactions against a hierarchical deterministic
// keystore.  The transaction structure mirrors the JSON the TRON full node
// APIs exchange: signing hashes the protobuf-serialized raw_data_hex payload
// with SHA256 and appends a hex-encoded recoverable signature to the
// signature array.
package tron

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/forkwallet/forkwallet/keystore"
)

// coinID is the keystore coin identifier TRON accounts are registered under.
const coinID = "TRON"

// Transaction models a TRON transaction as exchanged with the full node HTTP
// API.  RawDataHex carries the protobuf serialization of the raw transaction
// and is the only field signing depends on; RawData is retained untouched so
// a signed transaction re-serializes with the fields it arrived with.
type Transaction struct {
	Visible    bool            `json:"visible,omitempty"`
	TxID       string          `json:"txID,omitempty"`
	RawData    json.RawMessage `json:"raw_data,omitempty"`
	RawDataHex string          `json:"raw_data_hex"`
	Signature  []string        `json:"signature,omitempty"`
}

// AccountKeystore is the keystore surface the signer depends on: locating
// the TRON account and producing recoverable signatures for its derivation
// path.  *keystore.Keystore implements it.
type AccountKeystore interface {
	Account(coin string) (keystore.Account, error)
	SignRecoverable(path, password string, hash []byte) ([]byte, error)
}

// Signer signs TRON transactions with keys held by a keystore.
type Signer struct {
	ks AccountKeystore
}

// NewSigner returns a signer backed by the given keystore.
func NewSigner(ks AccountKeystore) *Signer {
	return &Signer{ks: ks}
}

// SignTransaction signs the transaction in place: the hex-decoded raw data
// payload is hashed with SHA256, signed with the key at the TRON account's
// derivation path, and the hex-encoded 65-byte recoverable signature is
// appended to the transaction's signature array.
//
// Keystore failures propagate unchanged, so callers observe
// keystore.ErrMissingPassword, keystore.ErrWrongPassword, and
// keystore.ErrAccountNotFound directly.
func (s *Signer) SignTransaction(tx *Transaction, password string) error {
	if tx.RawDataHex == "" {
		str := "transaction raw data payload is empty"
		return makeError(ErrInvalidRawData, str)
	}
	rawData, err := hex.DecodeString(tx.RawDataHex)
	if err != nil {
		str := fmt.Sprintf("transaction raw data payload is not valid "+
			"hex: %v", err)
		return makeError(ErrInvalidRawData, str)
	}

	account, err := s.ks.Account(coinID)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(rawData)
	sig, err := s.ks.SignRecoverable(account.DerivationPath, password, hash[:])
	if err != nil {
		return err
	}

	tx.Signature = append(tx.Signature, hex.EncodeToString(sig))
	log.Debugf("Signed transaction %x with account at %s", hash,
		account.DerivationPath)
	return nil
}
