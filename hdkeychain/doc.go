// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package hdkeychain provides an API for Bitcoin-family hierarchical
deterministic extended keys (BIP32).

The serialized version prefixes are parameterized through the NetworkParams
interface, which the chaincfg package implements, so a key derived once can
be re-serialized for any of the supported networks.  See StringFor and the
extended key encoding helpers in the fwutil package.

A few other useful details:

  - Private extended keys can be used to derive both hardened and non-hardened
    (normal) child private and public extended keys
  - Public extended keys can only be used to derive non-hardened child public
    extended keys
  - All keys in memory that are no longer needed should be zeroed with Zero
*/
package hdkeychain
