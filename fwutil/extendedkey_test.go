// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fwutil

import (
	"errors"
	"testing"

	"github.com/forkwallet/forkwallet/chaincfg"
	"github.com/forkwallet/forkwallet/hdkeychain"
)

// TestEncodeExtendedKeys ensures extended keys re-serialize with the version
// prefix of the requested coin and that unregistered coins are rejected.
//
// The master key comes from the first [BIP32] test vector, so the expected
// strings are the well-known xpub/xprv serializations.  All of the supported
// networks share the mainnet Bitcoin extended key prefixes, so the encoding
// is identical across them.
func TestEncodeExtendedKeys(t *testing.T) {
	const (
		wantPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ2" +
			"9ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
		wantPriv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiCh" +
			"kVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	)

	seed := hexToBytes("000102030405060708090a0b0c0d0e0f")
	master, err := hdkeychain.NewMaster(seed, chaincfg.BTCMainNetParams())
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	for _, coin := range []string{"btc", "ltc", "bch", "BTC-TESTNET"} {
		pub, err := EncodeExtendedPubKey(master, coin)
		if err != nil {
			t.Fatalf("EncodeExtendedPubKey(%q): %v", coin, err)
		}
		if pub != wantPub {
			t.Errorf("EncodeExtendedPubKey(%q): got %s, want %s", coin, pub,
				wantPub)
		}

		priv, err := EncodeExtendedPrivKey(master, coin)
		if err != nil {
			t.Fatalf("EncodeExtendedPrivKey(%q): %v", coin, err)
		}
		if priv != wantPriv {
			t.Errorf("EncodeExtendedPrivKey(%q): got %s, want %s", coin, priv,
				wantPriv)
		}
	}

	// Unregistered coins fail with ErrUnsupportedChain.
	if _, err := EncodeExtendedPubKey(master, "dogecoin"); !errors.Is(err, ErrUnsupportedChain) {
		t.Errorf("EncodeExtendedPubKey: got error %v, want %v", err,
			ErrUnsupportedChain)
	}
	if _, err := EncodeExtendedPrivKey(master, "dogecoin"); !errors.Is(err, ErrUnsupportedChain) {
		t.Errorf("EncodeExtendedPrivKey: got error %v, want %v", err,
			ErrUnsupportedChain)
	}

	// Public keys cannot be serialized as private extended keys.
	neutered := master.Neuter()
	if _, err := EncodeExtendedPrivKey(neutered, "btc"); !errors.Is(err, hdkeychain.ErrNotPrivExtKey) {
		t.Errorf("EncodeExtendedPrivKey: got error %v, want %v", err,
			hdkeychain.ErrNotPrivExtKey)
	}

	// Neutering happens inside the public encoder, so a private key input
	// yields the public serialization.
	pub, err := EncodeExtendedPubKey(neutered, "ltc")
	if err != nil {
		t.Fatalf("EncodeExtendedPubKey: %v", err)
	}
	if pub != wantPub {
		t.Errorf("EncodeExtendedPubKey: got %s, want %s", pub, wantPub)
	}
}
