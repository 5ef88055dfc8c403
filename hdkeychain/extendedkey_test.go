// Copyright (c) 2014 The btcsuite developers
// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkeychain

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// mockNetParams implements the NetworkParams interface with the mainnet
// Bitcoin extended key version prefixes all supported networks share.
type mockNetParams struct{}

func (mockNetParams) HDPrivKeyVersion() [4]byte {
	return [4]byte{0x04, 0x88, 0xad, 0xe4}
}

func (mockNetParams) HDPubKeyVersion() [4]byte {
	return [4]byte{0x04, 0x88, 0xb2, 0x1e}
}

// TestBIP0032Vectors tests the vectors provided by [BIP32] to ensure the
// derivation works as intended.
func TestBIP0032Vectors(t *testing.T) {
	// The master seeds for the BIP32 test vectors.
	testVec1MasterHex := "000102030405060708090a0b0c0d0e0f"
	testVec2MasterHex := "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542"
	hkStart := uint32(0x80000000)

	net := mockNetParams{}
	tests := []struct {
		name     string
		master   string
		path     []uint32
		wantPub  string
		wantPriv string
	}{
		// Test vector 1
		{
			name:     "test vector 1 chain m",
			master:   testVec1MasterHex,
			path:     []uint32{},
			wantPub:  "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
			wantPriv: "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		},
		{
			name:     "test vector 1 chain m/0H",
			master:   testVec1MasterHex,
			path:     []uint32{hkStart},
			wantPub:  "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw",
			wantPriv: "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		},
		{
			name:     "test vector 1 chain m/0H/1",
			master:   testVec1MasterHex,
			path:     []uint32{hkStart, 1},
			wantPub:  "xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ",
			wantPriv: "xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs",
		},
		{
			name:     "test vector 1 chain m/0H/1/2H",
			master:   testVec1MasterHex,
			path:     []uint32{hkStart, 1, hkStart + 2},
			wantPub:  "xpub6D4BDPcP2GT577Vvch3R8wDkScZWzQzMMUm3PWbmWvVJrZwQY4VUNgqFJPMM3No2dFDFGTsxxpG5uJh7n7epu4trkrX7x7DogT5Uv6fcLW5",
			wantPriv: "xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM",
		},
		{
			name:     "test vector 1 chain m/0H/1/2H/2",
			master:   testVec1MasterHex,
			path:     []uint32{hkStart, 1, hkStart + 2, 2},
			wantPub:  "xpub6FHa3pjLCk84BayeJxFW2SP4XRrFd1JYnxeLeU8EqN3vDfZmbqBqaGJAyiLjTAwm6ZLRQUMv1ZACTj37sR62cfN7fe5JnJ7dh8zL4fiyLHV",
			wantPriv: "xprvA2JDeKCSNNZky6uBCviVfJSKyQ1mDYahRjijr5idH2WwLsEd4Hsb2Tyh8RfQMuPh7f7RtyzTtdrbdqqsunu5Mm3wDvUAKRHSC34sJ7in334",
		},
		{
			name:     "test vector 1 chain m/0H/1/2H/2/1000000000",
			master:   testVec1MasterHex,
			path:     []uint32{hkStart, 1, hkStart + 2, 2, 1000000000},
			wantPub:  "xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy",
			wantPriv: "xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
		},

		// Test vector 2
		{
			name:     "test vector 2 chain m",
			master:   testVec2MasterHex,
			path:     []uint32{},
			wantPub:  "xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB",
			wantPriv: "xprv9s21ZrQH143K31xYSDQpPDxsXRTUcvj2iNHm5NUtrGiGG5e2DtALGdso3pGz6ssrdK4PFmM8NSpSBHNqPqm55Qn3LqFtT2emdEXVYsCzC2U",
		},
		{
			name:     "test vector 2 chain m/0",
			master:   testVec2MasterHex,
			path:     []uint32{0},
			wantPub:  "xpub69H7F5d8KSRgmmdJg2KhpAK8SR3DjMwAdkxj3ZuxV27CprR9LgpeyGmXUbC6wb7ERfvrnKZjXoUmmDznezpbZb7ap6r1D3tgFxHmwMkQTPH",
			wantPriv: "xprv9vHkqa6EV4sPZHYqZznhT2NPtPCjKuDKGY38FBWLvgaDx45zo9WQRUT3dKYnjwih2yJD9mkrocEZXo1ex8G81dwSM1fwqWpWkeS3v86pgKt",
		},
	}

tests:
	for i, test := range tests {
		masterSeed, err := hex.DecodeString(test.master)
		if err != nil {
			t.Errorf("DecodeString #%d (%s): unexpected error: %v", i,
				test.name, err)
			continue
		}

		extKey, err := NewMaster(masterSeed, net)
		if err != nil {
			t.Errorf("NewMaster #%d (%s): unexpected error when creating "+
				"new master key: %v", i, test.name, err)
			continue
		}

		for _, childNum := range test.path {
			var err error
			extKey, err = extKey.Child(childNum)
			if err != nil {
				t.Errorf("err: %v", err)
				continue tests
			}
		}

		privStr := extKey.String()
		if privStr != test.wantPriv {
			t.Errorf("Serialize #%d (%s): mismatched serialized private "+
				"extended key -- got: %s, want: %s", i, test.name, privStr,
				test.wantPriv)
			continue
		}

		pubKey := extKey.Neuter()

		// Neutering a second time should have no effect.
		if pubKey != pubKey.Neuter() {
			t.Errorf("Neuter of extended public key returned a new key")
			return
		}

		pubStr := pubKey.String()
		if pubStr != test.wantPub {
			t.Errorf("Neuter #%d (%s): mismatched serialized public "+
				"extended key -- got: %s, want: %s", i, test.name, pubStr,
				test.wantPub)
			continue
		}

		// The expected serializations must themselves parse as well-formed
		// extended keys and reserialize identically.
		for _, want := range []string{test.wantPriv, test.wantPub} {
			parsed, err := NewKeyFromString(want, net)
			if err != nil {
				t.Errorf("NewKeyFromString #%d (%s): unexpected error: %v",
					i, test.name, err)
				continue tests
			}
			if reserialized := parsed.String(); reserialized != want {
				t.Errorf("String #%d (%s): mismatched round trip -- got: "+
					"%s, want: %s", i, test.name, reserialized, want)
				continue tests
			}
		}
	}
}

// TestPublicDerivation tests several vectors which derive public keys from
// other public keys works as intended.
func TestPublicDerivation(t *testing.T) {
	// The public extended keys for test vector 1 in [BIP32].
	testVec1MasterPubKey := "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"

	net := mockNetParams{}
	tests := []struct {
		name    string
		master  string
		path    []uint32
		wantPub string
	}{
		{
			name:    "test vector 1 chain m",
			master:  testVec1MasterPubKey,
			path:    []uint32{},
			wantPub: "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		},
		{
			name:    "test vector 1 chain m/0",
			master:  testVec1MasterPubKey,
			path:    []uint32{0},
			wantPub: "xpub68Gmy5EVb2BdFbj2LpWrk1M7obNuaPTpT5oh9QCCo5sRfqSHVYWex97WpDZzszdzHzxXDAzPLVSwybe4uPYkSk4G3gnrPqqkV9RyNzAcNJ1",
		},
	}

tests:
	for i, test := range tests {
		extKey, err := NewKeyFromString(test.master, net)
		if err != nil {
			t.Errorf("NewKeyFromString #%d (%s): unexpected error: %v", i,
				test.name, err)
			continue
		}

		for _, childNum := range test.path {
			var err error
			extKey, err = extKey.Child(childNum)
			if err != nil {
				t.Errorf("err: %v", err)
				continue tests
			}
		}

		pubStr := extKey.String()
		if pubStr != test.wantPub {
			t.Errorf("Child #%d (%s): mismatched serialized public "+
				"extended key -- got: %s, want: %s", i, test.name, pubStr,
				test.wantPub)
			continue
		}

		// The expected serialization must itself parse as a well-formed
		// extended key and reserialize identically.
		parsed, err := NewKeyFromString(test.wantPub, net)
		if err != nil {
			t.Errorf("NewKeyFromString #%d (%s): unexpected error: %v", i,
				test.name, err)
			continue
		}
		if reserialized := parsed.String(); reserialized != test.wantPub {
			t.Errorf("String #%d (%s): mismatched round trip -- got: %s, "+
				"want: %s", i, test.name, reserialized, test.wantPub)
			continue
		}
	}
}

// TestExtendedKeyAPI ensures the API on the ExtendedKey type works as
// intended.
func TestExtendedKeyAPI(t *testing.T) {
	net := mockNetParams{}
	tests := []struct {
		name       string
		extKey     string
		isPrivate  bool
		parentFP   uint32
		childNum   uint32
		privKey    string
		privKeyErr error
		pubKey     string
	}{
		{
			name:      "test vector 1 master node private",
			extKey:    "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
			isPrivate: true,
			parentFP:  0,
			childNum:  0,
			privKey:   "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35",
			pubKey:    "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2",
		},
		{
			name:       "test vector 1 chain m/0H/1/2H public",
			extKey:     "xpub6D4BDPcP2GT577Vvch3R8wDkScZWzQzMMUm3PWbmWvVJrZwQY4VUNgqFJPMM3No2dFDFGTsxxpG5uJh7n7epu4trkrX7x7DogT5Uv6fcLW5",
			isPrivate:  false,
			parentFP:   3203769081,
			childNum:   HardenedKeyStart + 2,
			privKeyErr: ErrNotPrivExtKey,
			pubKey:     "0357bfe1e341d01c69fe5654309956cbea516822fba8a601743a012a7896ee8dc2",
		},
	}

	for i, test := range tests {
		key, err := NewKeyFromString(test.extKey, net)
		if err != nil {
			t.Errorf("NewKeyFromString #%d (%s): unexpected error: %v", i,
				test.name, err)
			continue
		}

		if key.IsPrivate() != test.isPrivate {
			t.Errorf("IsPrivate #%d (%s): mismatched private flag -- got "+
				"%v, want %v", i, test.name, key.IsPrivate(), test.isPrivate)
			continue
		}

		parentFP := key.ParentFingerprint()
		if parentFP != test.parentFP {
			t.Errorf("ParentFingerprint #%d (%s): mismatched parent "+
				"fingerprint -- got %d, want %d", i, test.name, parentFP,
				test.parentFP)
			continue
		}

		if key.ChildNum() != test.childNum {
			t.Errorf("ChildNum #%d (%s): mismatched child number -- got "+
				"%d, want %d", i, test.name, key.ChildNum(), test.childNum)
			continue
		}

		serializedKey := key.String()
		if serializedKey != test.extKey {
			t.Errorf("String #%d (%s): mismatched serialized key -- got "+
				"%s, want %s", i, test.name, serializedKey, test.extKey)
			continue
		}

		privKey, err := key.ECPrivKey()
		if !errors.Is(err, test.privKeyErr) {
			t.Errorf("ECPrivKey #%d (%s): mismatched error -- got %v, "+
				"want %v", i, test.name, err, test.privKeyErr)
			continue
		}
		if test.privKeyErr == nil {
			privKeyStr := hex.EncodeToString(privKey.Serialize())
			if privKeyStr != test.privKey {
				t.Errorf("ECPrivKey #%d (%s): mismatched private key -- "+
					"got %s, want %s", i, test.name, privKeyStr, test.privKey)
				continue
			}
		}

		pubKey, err := key.ECPubKey()
		if err != nil {
			t.Errorf("ECPubKey #%d (%s): unexpected error: %v", i, test.name,
				err)
			continue
		}
		pubKeyStr := hex.EncodeToString(pubKey.SerializeCompressed())
		if pubKeyStr != test.pubKey {
			t.Errorf("ECPubKey #%d (%s): mismatched public key -- got %s, "+
				"want %s", i, test.name, pubKeyStr, test.pubKey)
			continue
		}
	}
}

// TestErrors performs some negative tests for various invalid cases to ensure
// the errors are handled properly.
func TestErrors(t *testing.T) {
	net := mockNetParams{}

	// Should get an error when seed has too few bytes.
	_, err := NewMaster(bytes.Repeat([]byte{0x00}, 15), net)
	if !errors.Is(err, ErrInvalidSeedLen) {
		t.Fatalf("NewMaster: mismatched error -- got: %v, want: %v", err,
			ErrInvalidSeedLen)
	}

	// Should get an error when seed has too many bytes.
	_, err = NewMaster(bytes.Repeat([]byte{0x00}, 65), net)
	if !errors.Is(err, ErrInvalidSeedLen) {
		t.Fatalf("NewMaster: mismatched error -- got: %v, want: %v", err,
			ErrInvalidSeedLen)
	}

	// Generate a new key and neuter it to a public extended key.
	seed, err := GenerateSeed(RecommendedSeedLen)
	if err != nil {
		t.Fatalf("GenerateSeed: unexpected error: %v", err)
	}
	extKey, err := NewMaster(seed, net)
	if err != nil {
		t.Fatalf("NewMaster: unexpected error: %v", err)
	}
	pubKey := extKey.Neuter()

	// Deriving a hardened child extended key should fail from a public key.
	_, err = pubKey.Child(HardenedKeyStart)
	if !errors.Is(err, ErrDeriveHardFromPublic) {
		t.Fatalf("Child: mismatched error -- got: %v, want: %v", err,
			ErrDeriveHardFromPublic)
	}

	// NewKeyFromString failure tests.
	tests := []struct {
		name string
		key  string
		err  error
	}{
		{
			name: "invalid key length",
			key:  "xpub1234",
			err:  ErrInvalidKeyLen,
		},
		{
			name: "bad checksum",
			key:  "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcets",
			err:  ErrBadChecksum,
		},
		{
			name: "wrong network",
			key:  "tpubD6NzVbkrYhZ4XgiXtGrdW5XDAPFCL9h7we1vwNCpn8tGbBcgfVYjXyhWo4E1xkh56hjod1RhGjxbaTLV3X4FyWuejifB9jusQ46QzG87VKp",
			err:  ErrWrongNetwork,
		},
	}

	for i, test := range tests {
		_, err := NewKeyFromString(test.key, net)
		if !errors.Is(err, test.err) {
			t.Errorf("NewKeyFromString #%d (%s): mismatched error -- got: "+
				"%v, want: %v", i, test.name, err, test.err)
			continue
		}
	}
}

// TestZero ensures that zeroing an extended key works as intended.
func TestZero(t *testing.T) {
	net := mockNetParams{}
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("DecodeString: unexpected error: %v", err)
	}
	key, err := NewMaster(seed, net)
	if err != nil {
		t.Fatalf("NewMaster: unexpected error: %v", err)
	}

	key.Zero()
	if key.IsPrivate() {
		t.Fatal("IsPrivate: key claims to be private after zeroing")
	}
	if serialized := key.String(); serialized != "zeroed extended key" {
		t.Fatalf("String: unexpected serialized key after zeroing: %s",
			serialized)
	}
	if _, err := key.ECPrivKey(); !errors.Is(err, ErrNotPrivExtKey) {
		t.Fatalf("ECPrivKey: mismatched error -- got %v, want %v", err,
			ErrNotPrivExtKey)
	}
}

// TestMaximumDepth ensures that attempting to derive a child key when the
// parent is already at the maximum supported depth fails as expected.
func TestMaximumDepth(t *testing.T) {
	net := mockNetParams{}
	seed, err := GenerateSeed(RecommendedSeedLen)
	if err != nil {
		t.Fatalf("GenerateSeed: unexpected error: %v", err)
	}
	extKey, err := NewMaster(seed, net)
	if err != nil {
		t.Fatalf("NewMaster: unexpected error: %v", err)
	}

	for i := uint8(0); i < maxUint8; i++ {
		if extKey.Depth() != i {
			t.Fatalf("Depth: mismatched depth -- got %d, want %d",
				extKey.Depth(), i)
		}
		newKey, err := extKey.Child(1)
		if err != nil {
			t.Fatalf("Child: unexpected error: %v", err)
		}
		extKey = newKey
	}

	noKey, err := extKey.Child(1)
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("Child: mismatched error -- got: %v, want: %v", err,
			ErrMaxDepthExceeded)
	}
	if noKey != nil {
		t.Fatal("Child: deriving 256th key should not succeed")
	}
}
