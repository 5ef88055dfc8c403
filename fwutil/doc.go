// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package fwutil provides Bitcoin-family payment address encoding, decoding, and
payment script construction for the networks registered in the chaincfg
package.

# Addresses

Three concrete address kinds are supported, all implementing the Address
interface:

  - AddressPubKeyHash: legacy pay-to-pubkey-hash (Base58Check)
  - AddressScriptHash: pay-to-script-hash (Base58Check), including the wrapped
    witness (P2SH-P2WPKH) form
  - AddressWitnessProgram: native segregated witness programs (bech32)

DecodeAddress parses any of the above from its text encoding.  The bech32
human-readable prefix, when present, selects the network; otherwise the
Base58Check version byte selects both the network and the address kind.

NewAddressPubKey, NewAddressScriptHashWrappedWitness, and
NewAddressWitnessPubKey construct the three kinds from a serialized secp256k1
public key.  AddressLike mirrors the kind and network of an existing address
for a new key, and DefaultAddress applies the wrapped witness policy used for
new accounts.

Every address projects to the script that pays it via PaymentScript.

# Extended keys

EncodeExtendedPubKey and EncodeExtendedPrivKey re-serialize an
hdkeychain.ExtendedKey with the extended key version prefix of any registered
network.

# Errors

Errors returned by this package are of type Error and wrap an ErrorKind, so
callers can inspect the failure reason with errors.Is.
*/
package fwutil
