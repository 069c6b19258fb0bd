package broadcast

import "testing"

func TestParseInferredNonce(t *testing.T) {
	tests := []struct {
		name    string
		message string
		nonce   int64
		ok      bool
	}{
		{
			name:    "node rejection message",
			message: "Error: Specified nonce 4 is not the inferred nonce 7",
			nonce:   7,
			ok:      true,
		},
		{
			name:    "uppercase variant",
			message: "INFERRED NONCE 12 expected",
			nonce:   12,
			ok:      true,
		},
		{
			name:    "extra whitespace",
			message: "inferred   nonce   33",
			nonce:   33,
			ok:      true,
		},
		{
			name:    "zero nonce",
			message: "inferred nonce 0",
			nonce:   0,
			ok:      true,
		},
		{
			name:    "no hint",
			message: "insufficient funds",
			ok:      false,
		},
		{
			name:    "nonce word without number",
			message: "inferred nonce mismatch",
			ok:      false,
		},
		{
			name:    "empty message",
			message: "",
			ok:      false,
		},
		{
			name:    "overflows int64",
			message: "inferred nonce 99999999999999999999999999",
			ok:      false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nonce, ok := ParseInferredNonce(tc.message)
			if ok != tc.ok {
				t.Fatalf("ParseInferredNonce(%q) ok = %v, want %v", tc.message, ok, tc.ok)
			}
			if ok && nonce != tc.nonce {
				t.Fatalf("ParseInferredNonce(%q) = %d, want %d", tc.message, nonce, tc.nonce)
			}
		})
	}
}
