// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package keystore implements a password-sealed hierarchical deterministic
keystore.

A keystore is created from a BIP39 mnemonic phrase or a raw seed.  The seed is
sealed with an AES-GCM key derived from the password via scrypt and is only
materialized transiently while deriving keys or signing.  Per-chain accounts
are registered by deriving the key at a BIP44 path; chains registered in the
chaincfg package get a default receiving address built by the fwutil package.

SignRecoverable produces 65-byte recoverable ECDSA signatures laid out as
R || S || recovery id, the form chains such as TRON embed in transactions.
*/
package keystore
