// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"strings"
)

// Params defines a Bitcoin-derived network by the parameters needed to encode
// and decode addresses and extended keys for it.  Params values are read-only
// process-wide constants and must not be modified by callers.
type Params struct {
	// Name is the canonical identifier for the network, e.g. "LTC" or
	// "BTC-TESTNET".  It is what decoded addresses report as their coin.
	Name string

	// Bech32HRPSegwit is the human-readable part used by native segregated
	// witness addresses on the network.
	Bech32HRPSegwit string

	// PubKeyHashAddrID is the Base58Check version byte of a
	// pay-to-pubkey-hash address.
	PubKeyHashAddrID byte

	// ScriptHashAddrID is the Base58Check version byte of a
	// pay-to-script-hash address.
	ScriptHashAddrID byte

	// HDPrivateKeyID and HDPublicKeyID are the 4-byte version prefixes used
	// when serializing extended private and public keys for the network.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte
}

// Coin returns the canonical coin identifier for the network.
func (p *Params) Coin() string {
	return p.Name
}

// Bech32HRP returns the human-readable part for native witness addresses on
// the network.
func (p *Params) Bech32HRP() string {
	return p.Bech32HRPSegwit
}

// AddrIDPubKeyHashV0 returns the Base58Check version byte for
// pay-to-pubkey-hash addresses.
func (p *Params) AddrIDPubKeyHashV0() byte {
	return p.PubKeyHashAddrID
}

// AddrIDScriptHashV0 returns the Base58Check version byte for
// pay-to-script-hash addresses.
func (p *Params) AddrIDScriptHashV0() byte {
	return p.ScriptHashAddrID
}

// HDPrivKeyVersion returns the hierarchical deterministic extended private
// key version bytes for the network.
func (p *Params) HDPrivKeyVersion() [4]byte {
	return p.HDPrivateKeyID
}

// HDPubKeyVersion returns the hierarchical deterministic extended public key
// version bytes for the network.
func (p *Params) HDPubKeyVersion() [4]byte {
	return p.HDPublicKeyID
}

// Extended key version prefixes are shared by all of the supported networks
// since they all serialize extended keys the mainnet Bitcoin way.
var (
	hdPrivateKeyID = [4]byte{0x04, 0x88, 0xad, 0xe4} // starts with xprv
	hdPublicKeyID  = [4]byte{0x04, 0x88, 0xb2, 0x1e} // starts with xpub
)

var (
	// btcMainNetParams defines the network parameters for the main Bitcoin
	// network.
	btcMainNetParams = Params{
		Name:             "BTC",
		Bech32HRPSegwit:  "bc",
		PubKeyHashAddrID: 0x00, // starts with 1
		ScriptHashAddrID: 0x05, // starts with 3
		HDPrivateKeyID:   hdPrivateKeyID,
		HDPublicKeyID:    hdPublicKeyID,
	}

	// btcTestNetParams defines the network parameters for the test Bitcoin
	// network (version 3).
	btcTestNetParams = Params{
		Name:             "BTC-TESTNET",
		Bech32HRPSegwit:  "bc",
		PubKeyHashAddrID: 0x6f, // starts with m or n
		ScriptHashAddrID: 0xc4, // starts with 2
		HDPrivateKeyID:   hdPrivateKeyID,
		HDPublicKeyID:    hdPublicKeyID,
	}

	// ltcMainNetParams defines the network parameters for the main Litecoin
	// network.
	ltcMainNetParams = Params{
		Name:             "LTC",
		Bech32HRPSegwit:  "ltc",
		PubKeyHashAddrID: 0x30, // starts with L
		ScriptHashAddrID: 0x32, // starts with M
		HDPrivateKeyID:   hdPrivateKeyID,
		HDPublicKeyID:    hdPublicKeyID,
	}

	// ltcTestNetParams defines the network parameters for the test Litecoin
	// network.
	ltcTestNetParams = Params{
		Name:             "LTC-TESTNET",
		Bech32HRPSegwit:  "ltc",
		PubKeyHashAddrID: 0x6f, // starts with m or n
		ScriptHashAddrID: 0x3a, // starts with Q
		HDPrivateKeyID:   hdPrivateKeyID,
		HDPublicKeyID:    hdPublicKeyID,
	}

	// bchMainNetParams defines the network parameters for the main Bitcoin
	// Cash network.  Bitcoin Cash shares the legacy Bitcoin version bytes.
	bchMainNetParams = Params{
		Name:             "BCH",
		Bech32HRPSegwit:  "bitcoincash",
		PubKeyHashAddrID: 0x00, // starts with 1
		ScriptHashAddrID: 0x05, // starts with 3
		HDPrivateKeyID:   hdPrivateKeyID,
		HDPublicKeyID:    hdPublicKeyID,
	}
)

// BTCMainNetParams returns the network parameters for the main Bitcoin
// network.
func BTCMainNetParams() *Params {
	return &btcMainNetParams
}

// BTCTestNetParams returns the network parameters for the test Bitcoin
// network.
func BTCTestNetParams() *Params {
	return &btcTestNetParams
}

// LTCMainNetParams returns the network parameters for the main Litecoin
// network.
func LTCMainNetParams() *Params {
	return &ltcMainNetParams
}

// LTCTestNetParams returns the network parameters for the test Litecoin
// network.
func LTCTestNetParams() *Params {
	return &ltcTestNetParams
}

// BCHMainNetParams returns the network parameters for the main Bitcoin Cash
// network.
func BCHMainNetParams() *Params {
	return &bchMainNetParams
}

// registeredNets maps lowercased coin identifiers, including the historical
// aliases accepted by callers, to their network parameters.
var registeredNets = map[string]*Params{
	"btc":         &btcMainNetParams,
	"bc":          &btcMainNetParams,
	"btc-testnet": &btcTestNetParams,
	"ltc":         &ltcMainNetParams,
	"ltc-testnet": &ltcTestNetParams,
	"bch":         &bchMainNetParams,
	"bitcoincash": &bchMainNetParams,
}

// ParamsForCoin returns the network parameters registered for the given coin
// identifier.  Matching is case-insensitive.  The second return value is
// false when the identifier is not registered, which callers must treat as a
// recoverable unsupported-chain condition.
func ParamsForCoin(coin string) (*Params, bool) {
	params, ok := registeredNets[strings.ToLower(coin)]
	return params, ok
}
