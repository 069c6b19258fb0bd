package address

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/btcsuite/btcutil/base58"
)

// encodeAddress builds a base58check string from a raw payload the same
// way the wallet tooling does: payload followed by the first four bytes
// of sha256(sha256(payload)).
func encodeAddress(payload []byte) string {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return base58.Encode(append(append([]byte{}, payload...), second[:4]...))
}

func validPayload() []byte {
	payload := make([]byte, 36)
	payload[0] = 0xcb
	payload[1] = 0x01
	for i := 2; i < len(payload); i++ {
		payload[i] = byte(i * 7)
	}
	return payload
}

func TestCheckDecode_ValidAddress(t *testing.T) {
	addr := encodeAddress(validPayload())
	if !CheckDecode(addr) {
		t.Fatalf("expected %q to be valid", addr)
	}
}

func TestCheckDecode_EmptyAddress(t *testing.T) {
	if CheckDecode("") {
		t.Fatal("expected empty address to be invalid")
	}
}

func TestCheckDecode_NotBase58(t *testing.T) {
	if CheckDecode("0OIl+/not-base58") {
		t.Fatal("expected non-base58 input to be invalid")
	}
}

func TestCheckDecode_CorruptedChecksum(t *testing.T) {
	addr := encodeAddress(validPayload())

	// Flip one character of the body; the checksum no longer matches.
	corrupted := []byte(addr)
	if corrupted[10] == 'a' {
		corrupted[10] = 'b'
	} else {
		corrupted[10] = 'a'
	}

	if CheckDecode(string(corrupted)) {
		t.Fatalf("expected corrupted address %q to be invalid", corrupted)
	}
}

func TestCheckDecode_WrongPayloadLength(t *testing.T) {
	short := encodeAddress(validPayload()[:20])
	if CheckDecode(short) {
		t.Fatalf("expected short-payload address %q to be invalid", short)
	}

	long := encodeAddress(append(validPayload(), 0x01, 0x02))
	if CheckDecode(long) {
		t.Fatalf("expected long-payload address %q to be invalid", long)
	}
}

func TestCheckDecode_TooShortToCarryChecksum(t *testing.T) {
	if CheckDecode("1") {
		t.Fatal("expected single-character address to be invalid")
	}
}

func TestCheckPattern(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{
			name:    "well formed address",
			address: "B62qre3erTHfzQckNuibViWQGyyKwZseztqrjPZBv6SQF384Rg6ESAy",
			want:    true,
		},
		{
			name:    "lowercase prefix accepted",
			address: "b62qre3erTHfzQckNuibViWQGyyKwZseztqrjPZBv6SQF384Rg6ESAy",
			want:    true,
		},
		{
			name:    "empty",
			address: "",
			want:    false,
		},
		{
			name:    "wrong prefix",
			address: "B63" + strings.Repeat("q", 52),
			want:    false,
		},
		{
			name:    "too short",
			address: "B62" + strings.Repeat("q", 51),
			want:    false,
		},
		{
			name:    "too long",
			address: "B62" + strings.Repeat("q", 53),
			want:    false,
		},
		{
			name:    "non-alphanumeric body",
			address: "B62" + strings.Repeat("q", 51) + "!",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPattern(tt.address); got != tt.want {
				t.Fatalf("CheckPattern(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}
