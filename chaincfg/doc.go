// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chaincfg defines the address encoding parameters for the supported
Bitcoin-derived networks.

Every network is described by an immutable Params value: the Base58Check
version bytes for pay-to-pubkey-hash and pay-to-script-hash addresses, the
bech32 human-readable prefix for native witness addresses, and the 4-byte
version prefixes used when serializing extended keys for that network.

The set of networks is fixed at build time and is looked up by coin
identifier with ParamsForCoin.  Adding support for another network is a data
change only: add a Params value and its registry rows, and the codec in
fwutil picks it up without modification.
*/
package chaincfg
