// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// addrgen is a small tool that derives payment addresses from a public key
// and decodes address strings for the supported networks.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/forkwallet/forkwallet/chaincfg"
	"github.com/forkwallet/forkwallet/fwutil"
	"github.com/forkwallet/forkwallet/hdkeychain"
)

// config defines the configuration options for addrgen.
//
// See loadConfig for details on the configuration load process.
type config struct {
	Coin   string `short:"c" long:"coin" description:"Coin identifier (btc, btc-testnet, ltc, ltc-testnet, bch)" default:"btc"`
	PubKey string `short:"p" long:"pubkey" description:"Hex-encoded secp256k1 public key to derive addresses for"`
	Like   string `long:"like" description:"Reference address whose kind and network to mirror for the public key"`
	Decode string `short:"d" long:"decode" description:"Address to decode"`
	ExtKey string `short:"x" long:"extkey" description:"Extended key to re-encode with the coin's version prefix"`
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, error) {
	cfg := config{}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}
	if cfg.PubKey == "" && cfg.Decode == "" && cfg.ExtKey == "" {
		parser.WriteHelp(os.Stderr)
		return nil, fmt.Errorf("one of --pubkey, --decode, or --extkey is required")
	}
	return &cfg, nil
}

// kindString returns a short human-readable name for the address kind.
func kindString(addr fwutil.Address) string {
	switch addr.(type) {
	case *fwutil.AddressPubKeyHash:
		return "pubkey hash (P2PKH)"
	case *fwutil.AddressScriptHash:
		return "script hash (P2SH)"
	case *fwutil.AddressWitnessProgram:
		return "witness program"
	}
	return "unknown"
}

// decodeAddress decodes the given address and prints its network, kind, and
// payment script.
func decodeAddress(addr string) error {
	decoded, err := fwutil.DecodeAddress(addr)
	if err != nil {
		return err
	}
	fmt.Printf("Coin:           %s\n", decoded.Net().Coin())
	fmt.Printf("Kind:           %s\n", kindString(decoded))
	fmt.Printf("Payment script: %x\n", decoded.PaymentScript())
	return nil
}

// deriveAddresses prints the addresses of every supported kind for the given
// public key, or a single address mirroring the reference address when one is
// provided.
func deriveAddresses(pubKeyHex, coin, like string) error {
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return fmt.Errorf("invalid public key hex: %w", err)
	}

	if like != "" {
		addr, err := fwutil.AddressLike(like, pubKey)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", addr)
		return nil
	}

	net, ok := chaincfg.ParamsForCoin(coin)
	if !ok {
		return fmt.Errorf("coin %q is not registered", coin)
	}
	legacy, err := fwutil.NewAddressPubKey(pubKey, net)
	if err != nil {
		return err
	}
	wrapped, err := fwutil.NewAddressScriptHashWrappedWitness(pubKey, net)
	if err != nil {
		return err
	}
	native, err := fwutil.NewAddressWitnessPubKey(pubKey, net)
	if err != nil {
		return err
	}

	fmt.Printf("Legacy (P2PKH):          %s\n", legacy)
	fmt.Printf("Wrapped (P2SH-P2WPKH):   %s\n", wrapped)
	fmt.Printf("Native (P2WPKH):         %s\n", native)
	return nil
}

// reencodeExtendedKey prints the given extended key re-serialized with the
// coin's extended key version prefix.
func reencodeExtendedKey(extKey, coin string) error {
	// All supported networks share the serialization prefixes, so parsing
	// against the Bitcoin parameters accepts any of them.
	key, err := hdkeychain.NewKeyFromString(extKey, chaincfg.BTCMainNetParams())
	if err != nil {
		return err
	}
	defer key.Zero()

	if key.IsPrivate() {
		encoded, err := fwutil.EncodeExtendedPrivKey(key, coin)
		if err != nil {
			return err
		}
		fmt.Printf("Extended private key: %s\n", encoded)
	}
	encoded, err := fwutil.EncodeExtendedPubKey(key, coin)
	if err != nil {
		return err
	}
	fmt.Printf("Extended public key:  %s\n", encoded)
	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Exit(1)
	}

	switch {
	case cfg.Decode != "":
		err = decodeAddress(cfg.Decode)
	case cfg.PubKey != "":
		err = deriveAddresses(cfg.PubKey, cfg.Coin, cfg.Like)
	case cfg.ExtKey != "":
		err = reencodeExtendedKey(cfg.ExtKey, cfg.Coin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
