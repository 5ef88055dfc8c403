// Copyright (c) 2024 The forkwallet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keystore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forkwallet/forkwallet/hdkeychain"
)

// ParseDerivationPath parses a BIP44-style derivation path string such as
// "m/44'/145'/0'/0/0" into the child indices to derive, with hardened
// components offset by hdkeychain.HardenedKeyStart.  Both the apostrophe and
// "h" notations mark hardened components.  The leading "m" element is
// optional.
func ParseDerivationPath(path string) ([]uint32, error) {
	components := strings.Split(path, "/")
	if len(components) == 0 || path == "" {
		str := "derivation path is empty"
		return nil, makeError(ErrInvalidDerivationPath, str)
	}
	if components[0] == "m" || components[0] == "M" {
		components = components[1:]
	}
	if len(components) == 0 {
		str := fmt.Sprintf("derivation path %q has no components", path)
		return nil, makeError(ErrInvalidDerivationPath, str)
	}

	indices := make([]uint32, 0, len(components))
	for _, component := range components {
		hardened := false
		switch {
		case strings.HasSuffix(component, "'"):
			hardened = true
			component = strings.TrimSuffix(component, "'")
		case strings.HasSuffix(component, "h"), strings.HasSuffix(component, "H"):
			hardened = true
			component = component[:len(component)-1]
		}

		index, err := strconv.ParseUint(component, 10, 32)
		if err != nil || index >= hdkeychain.HardenedKeyStart {
			str := fmt.Sprintf("derivation path %q has invalid component %q",
				path, component)
			return nil, makeError(ErrInvalidDerivationPath, str)
		}
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		indices = append(indices, uint32(index))
	}
	return indices, nil
}
