package encryption

import (
	"bytes"
	"testing"
)

func TestPKCS7Pad(t *testing.T) {
	padder := &PKCS7Padding{}

	tests := []struct {
		name   string
		length int
		padLen int
	}{
		{"empty", 0, 16},
		{"one byte", 1, 15},
		{"fifteen bytes", 15, 1},
		{"aligned gets a full block", 16, 16},
		{"seventeen bytes", 17, 15},
		{"two blocks aligned", 32, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, tt.length)
			for i := range data {
				data[i] = 0xAA
			}

			padded := padder.Pad(data, 16)
			if len(padded) != tt.length+tt.padLen {
				t.Fatalf("expected padded length %d, got %d", tt.length+tt.padLen, len(padded))
			}
			if !bytes.Equal(padded[:tt.length], data) {
				t.Error("padding modified the original data")
			}
			for i := tt.length; i < len(padded); i++ {
				if padded[i] != byte(tt.padLen) {
					t.Fatalf("padding byte at %d: expected %d, got %d", i, tt.padLen, padded[i])
				}
			}
		})
	}
}

func TestPKCS7Unpad(t *testing.T) {
	padder := &PKCS7Padding{}

	tests := []struct {
		name     string
		data     []byte
		expected []byte
	}{
		{"valid single byte", []byte{1, 2, 3, 1}, []byte{1, 2, 3}},
		{"valid three bytes", []byte{1, 3, 3, 3}, []byte{1}},
		{"full padding block", bytes.Repeat([]byte{16}, 16), []byte{}},
		{"zero final byte untouched", []byte{1, 2, 3, 0}, []byte{1, 2, 3, 0}},
		{"out of range final byte untouched", []byte{1, 2, 3, 17}, []byte{1, 2, 3, 17}},
		{"empty", []byte{}, []byte{}},
		// final byte only: the rest of the trailing run is not verified
		{"inconsistent trailing bytes still trimmed", []byte{1, 2, 9, 3}, []byte{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := padder.Unpad(tt.data, 16)
			if !bytes.Equal(out, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, out)
			}
		})
	}
}

func TestPKCS7PadUnpadRoundTrip(t *testing.T) {
	padder := &PKCS7Padding{}

	for n := 0; n < 50; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}

		padded := padder.Pad(data, 16)
		if len(padded)%16 != 0 {
			t.Fatalf("length %d: padded length %d not block aligned", n, len(padded))
		}
		if out := padder.Unpad(padded, 16); !bytes.Equal(out, data) {
			t.Errorf("length %d: round-trip failed", n)
		}
	}
}
