package encryption

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// Test keys and IVs
var (
	testKey128 = mustHex("000102030405060708090a0b0c0d0e0f")
	testKey256 = []byte("0123456789ABCDEF0123456789ABCDEF") // 32 bytes
	testIV16   = []byte("0123456789abcdef")                 // 16 bytes
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func getTestRC6(t *testing.T) *RC6 {
	t.Helper()
	cipher, err := NewRC6(testKey128)
	if err != nil {
		t.Fatalf("NewRC6 failed: %v", err)
	}
	return cipher
}

// Known-answer vectors from the RC6 reference specification (RC6-32/20)
func TestEncryptBlockReferenceVectors(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		plaintext  string
		ciphertext string
	}{
		{
			"all-zero key and block",
			"00000000000000000000000000000000",
			"00000000000000000000000000000000",
			"8fc3a53656b1f778c129df4e9848a41e",
		},
		{
			"128-bit key",
			"0123456789abcdef0112233445566778",
			"02132435465768798a9bacbdcedfe0f1",
			"524e192f4715c6231f51f6367ea43f18",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cipher, err := NewRC6(mustHex(tt.key))
			if err != nil {
				t.Fatalf("NewRC6 failed: %v", err)
			}

			ct, err := cipher.EncryptBlock(mustHex(tt.plaintext))
			if err != nil {
				t.Fatalf("EncryptBlock failed: %v", err)
			}
			if hex.EncodeToString(ct) != tt.ciphertext {
				t.Errorf("ciphertext mismatch: expected %s, got %s", tt.ciphertext, hex.EncodeToString(ct))
			}

			pt, err := cipher.DecryptBlock(ct)
			if err != nil {
				t.Fatalf("DecryptBlock failed: %v", err)
			}
			if hex.EncodeToString(pt) != tt.plaintext {
				t.Errorf("decrypt did not invert encrypt: expected %s, got %s", tt.plaintext, hex.EncodeToString(pt))
			}
		})
	}
}

func TestKeyScheduleLength(t *testing.T) {
	tests := []struct {
		rounds int
		words  int
	}{
		{1, 6},
		{12, 28},
		{20, 44},
		{32, 68},
	}

	for _, tt := range tests {
		cipher, err := NewRC6WithRounds(testKey128, tt.rounds)
		if err != nil {
			t.Fatalf("NewRC6WithRounds(%d) failed: %v", tt.rounds, err)
		}
		if len(cipher.s) != tt.words {
			t.Errorf("rounds=%d: expected schedule of %d words, got %d", tt.rounds, tt.words, len(cipher.s))
		}
	}
}

func TestKeyScheduleVector(t *testing.T) {
	cipher := getTestRC6(t)

	// First schedule words for key 000102...0f at 20 rounds
	expected := []uint32{0x298b3983, 0xbe89cebc, 0x364b5215, 0xbf53820d}
	for i, want := range expected {
		if cipher.s[i] != want {
			t.Errorf("s[%d]: expected %#08x, got %#08x", i, want, cipher.s[i])
		}
	}
}

func TestBlockRoundTripKeyLengths(t *testing.T) {
	keyLengths := []int{1, 3, 7, 16, 24, 32, 33}
	block := mustHex("000102030405060708090a0b0c0d0e0f")

	for _, n := range keyLengths {
		key := make([]byte, n)
		for i := range key {
			key[i] = byte(i * 7)
		}

		cipher, err := NewRC6(key)
		if err != nil {
			t.Fatalf("key length %d: NewRC6 failed: %v", n, err)
		}

		ct, err := cipher.EncryptBlock(block)
		if err != nil {
			t.Fatalf("key length %d: EncryptBlock failed: %v", n, err)
		}
		pt, err := cipher.DecryptBlock(ct)
		if err != nil {
			t.Fatalf("key length %d: DecryptBlock failed: %v", n, err)
		}
		if !bytes.Equal(pt, block) {
			t.Errorf("key length %d: round-trip failed", n)
		}
	}
}

func TestBlockRoundTripRoundCounts(t *testing.T) {
	block := []byte("Hello, World!!!!")

	for _, rounds := range []int{1, 8, 12, 20, 24} {
		cipher, err := NewRC6WithRounds(testKey128, rounds)
		if err != nil {
			t.Fatalf("rounds=%d: NewRC6WithRounds failed: %v", rounds, err)
		}

		ct, err := cipher.EncryptBlock(block)
		if err != nil {
			t.Fatalf("rounds=%d: EncryptBlock failed: %v", rounds, err)
		}
		if bytes.Equal(ct, block) {
			t.Errorf("rounds=%d: ciphertext equals plaintext", rounds)
		}

		pt, err := cipher.DecryptBlock(ct)
		if err != nil {
			t.Fatalf("rounds=%d: DecryptBlock failed: %v", rounds, err)
		}
		if !bytes.Equal(pt, block) {
			t.Errorf("rounds=%d: round-trip failed", rounds)
		}
	}
}

func TestNewRC6EmptyKey(t *testing.T) {
	if _, err := NewRC6(nil); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey for nil key, got %v", err)
	}
	if _, err := NewRC6([]byte{}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey for empty key, got %v", err)
	}
}

func TestNewRC6WithRoundsInvalid(t *testing.T) {
	for _, rounds := range []int{0, -1} {
		if _, err := NewRC6WithRounds(testKey128, rounds); err == nil {
			t.Errorf("expected error for rounds=%d", rounds)
		}
	}
}

func TestBlockSizeValidation(t *testing.T) {
	cipher := getTestRC6(t)

	for _, n := range []int{0, 1, 15, 17, 32} {
		buf := make([]byte, n)
		if _, err := cipher.EncryptBlock(buf); !errors.Is(err, ErrInvalidBlockSize) {
			t.Errorf("EncryptBlock(%d bytes): expected ErrInvalidBlockSize, got %v", n, err)
		}
		if _, err := cipher.DecryptBlock(buf); !errors.Is(err, ErrInvalidBlockSize) {
			t.Errorf("DecryptBlock(%d bytes): expected ErrInvalidBlockSize, got %v", n, err)
		}
	}
}

func BenchmarkEncryptBlock(b *testing.B) {
	cipher, _ := NewRC6(testKey128)
	block := make([]byte, RC6BlockSize)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cipher.EncryptBlock(block)
	}
}

func BenchmarkDecryptBlock(b *testing.B) {
	cipher, _ := NewRC6(testKey128)
	block, _ := cipher.EncryptBlock(make([]byte, RC6BlockSize))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cipher.DecryptBlock(block)
	}
}
