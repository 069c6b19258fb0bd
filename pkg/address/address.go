// Package address validates Mina recipient addresses.
//
// Two variants exist behind the same ValidateFunc shape: CheckDecode is
// the authoritative base58-checksum form, CheckPattern is the cheaper
// structural form kept for callers that only need a shape check.
package address

import (
	"crypto/sha256"
	"crypto/subtle"
	"regexp"

	"github.com/btcsuite/btcutil/base58"
)

// decodedAddressLen is the payload size of a decoded Mina address after
// the 4-byte checksum is stripped: 36 bytes, i.e. 72 hex characters.
const decodedAddressLen = 36

const checksumLen = 4

// addressPattern matches the structural form of a Mina address: the
// "B62" prefix followed by a 52-character alphanumeric body.
var addressPattern = regexp.MustCompile(`(?i)^B62[0-9a-zA-Z]{52}$`)

// ValidateFunc reports whether a candidate recipient address is valid.
// Malformed input of any kind is invalid, never an error.
type ValidateFunc func(address string) bool

// CheckDecode validates an address by base58-decoding it, verifying the
// trailing double-SHA256 checksum and checking the decoded payload length.
// It rejects transposition and typo errors the pattern check misses.
func CheckDecode(address string) bool {
	if address == "" {
		return false
	}

	decoded := base58.Decode(address)
	if len(decoded) < checksumLen+1 {
		return false
	}

	payload := decoded[:len(decoded)-checksumLen]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	if subtle.ConstantTimeCompare(second[:checksumLen], decoded[len(decoded)-checksumLen:]) != 1 {
		return false
	}

	return len(payload) == decodedAddressLen
}

// CheckPattern validates the structural form of an address without
// decoding it.
func CheckPattern(address string) bool {
	return addressPattern.MatchString(address)
}
