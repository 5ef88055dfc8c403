// Copyright (c) 2017 The Decred developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// tronsign signs a TRON transaction JSON document with a key derived from a
// BIP39 mnemonic.  The mnemonic and the keystore password are prompted for
// without terminal echo; the signed transaction is written to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/forkwallet/forkwallet/keystore"
	"github.com/forkwallet/forkwallet/tron"
)

// config defines the configuration options for tronsign.
type config struct {
	Path string `long:"path" description:"Derivation path of the signing key" default:"m/44'/195'/0'/0/0"`
	Args struct {
		TxFile string `positional-arg-name:"txfile" description:"File containing the transaction JSON"`
	} `positional-args:"yes" required:"yes"`
}

// promptSecret prompts for a secret on the terminal without echoing it.  The
// caller must zero the returned bytes when done with them.
func promptSecret(label string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	secret, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprint(os.Stderr, "\n")
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", label, err)
	}
	return secret, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0x00
	}
}

func run() error {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		return err
	}

	encoded, err := os.ReadFile(cfg.Args.TxFile)
	if err != nil {
		return err
	}
	var tx tron.Transaction
	if err := json.Unmarshal(encoded, &tx); err != nil {
		return fmt.Errorf("unable to parse transaction: %w", err)
	}

	mnemonic, err := promptSecret("Mnemonic")
	if err != nil {
		return err
	}
	password, err := promptSecret("Password")
	if err != nil {
		zero(mnemonic)
		return err
	}

	ks, err := keystore.NewFromMnemonic(string(mnemonic), string(password))
	zero(mnemonic)
	if err != nil {
		zero(password)
		return err
	}
	if _, err := ks.RegisterAccount("TRON", cfg.Path, string(password)); err != nil {
		zero(password)
		return err
	}

	err = tron.NewSigner(ks).SignTransaction(&tx, string(password))
	zero(password)
	if err != nil {
		return err
	}

	signed, err := json.MarshalIndent(&tx, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", signed)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
