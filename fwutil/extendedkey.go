// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fwutil

import (
	"fmt"

	"github.com/forkwallet/forkwallet/chaincfg"
	"github.com/forkwallet/forkwallet/hdkeychain"
)

// EncodeExtendedPubKey returns the base58-encoded extended public key
// serialized with the 4-byte version prefix of the given coin's network.  The
// key material itself is unchanged; only the prefix differs between networks.
// A private extended key is neutered first, so private material never appears
// in the result.
func EncodeExtendedPubKey(key *hdkeychain.ExtendedKey, coin string) (string, error) {
	net, ok := chaincfg.ParamsForCoin(coin)
	if !ok {
		str := fmt.Sprintf("coin %q is not registered", coin)
		return "", makeError(ErrUnsupportedChain, str)
	}
	return key.Neuter().StringFor(net), nil
}

// EncodeExtendedPrivKey returns the base58-encoded extended private key
// serialized with the 4-byte version prefix of the given coin's network.  The
// provided key must be a private extended key, otherwise
// hdkeychain.ErrNotPrivExtKey is returned.
func EncodeExtendedPrivKey(key *hdkeychain.ExtendedKey, coin string) (string, error) {
	net, ok := chaincfg.ParamsForCoin(coin)
	if !ok {
		str := fmt.Sprintf("coin %q is not registered", coin)
		return "", makeError(ErrUnsupportedChain, str)
	}
	if _, err := key.ECPrivKey(); err != nil {
		return "", err
	}
	return key.StringFor(net), nil
}
