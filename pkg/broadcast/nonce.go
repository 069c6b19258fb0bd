package broadcast

import (
	"regexp"
	"strconv"
)

// Ledger nodes report the account's expected nonce inside a free-text
// error, e.g. "Error: Specified nonce 4 is not the inferred nonce 7".
var inferredNoncePattern = regexp.MustCompile(`(?i)inferred\s+nonce\s+(\d+)`)

// ParseInferredNonce extracts the authoritative nonce from a ledger
// rejection message. The second return is false when the message carries
// no usable hint or the number does not fit in an int64.
func ParseInferredNonce(message string) (int64, bool) {
	match := inferredNoncePattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	nonce, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return nonce, true
}
