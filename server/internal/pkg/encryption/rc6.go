package encryption

import "fmt"

// RC6 magic constants: P32 is derived from e, Q32 from the golden ratio
const (
	p32 = uint32(0xB7E15163)
	q32 = uint32(0x9E3779B9)
)

// RC6 holds the expanded key schedule for one key. The schedule is derived
// once at construction and never mutated, so a single instance is safe to
// share across concurrent calls.
type RC6 struct {
	s []uint32 // expanded key schedule, 2*(r+2) words
	r int      // number of rounds
}

// NewRC6 creates an RC6 cipher with the default round count
func NewRC6(key []byte) (*RC6, error) {
	return NewRC6WithRounds(key, RC6DefaultRounds)
}

// NewRC6WithRounds creates an RC6 cipher with an explicit round count.
// The key may be any positive length (16/24/32 bytes for the standard
// security levels); an empty key is rejected here rather than by callers.
func NewRC6WithRounds(key []byte, rounds int) (*RC6, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if rounds < 1 {
		return nil, fmt.Errorf("round count must be at least 1, got %d", rounds)
	}

	cipher := &RC6{
		r: rounds,
		s: make([]uint32, 2*(rounds+2)),
	}
	cipher.expandKey(key)
	return cipher, nil
}

// BlockSize returns the block size of RC6
func (r *RC6) BlockSize() int {
	return RC6BlockSize
}

// Rounds returns the round count
func (r *RC6) Rounds() int {
	return r.r
}

// Name returns the cipher name
func (r *RC6) Name() string {
	return "RC6"
}

// EncryptBlock encrypts a single 128-bit block
func (r *RC6) EncryptBlock(plaintext []byte) ([]byte, error) {
	if len(plaintext) != RC6BlockSize {
		return nil, fmt.Errorf("%w: plaintext must be %d bytes, got %d", ErrInvalidBlockSize, RC6BlockSize, len(plaintext))
	}

	w := bytesToWords(plaintext)
	a, b, c, d := w[0], w[1], w[2], w[3]

	b = b + r.s[0]
	d = d + r.s[1]

	for i := 1; i <= r.r; i++ {
		t := rotl32(b*(2*b+1), 5)
		u := rotl32(d*(2*d+1), 5)
		a = rotl32(a^t, u%32) + r.s[2*i]
		c = rotl32(c^u, t%32) + r.s[2*i+1]

		a, b, c, d = b, c, d, a
	}

	a = a + r.s[2*r.r+2]
	c = c + r.s[2*r.r+3]

	return wordsToBytes([]uint32{a, b, c, d}), nil
}

// DecryptBlock decrypts a single 128-bit block. It is the exact algebraic
// inverse of EncryptBlock: undo post-whitening, unwind the rounds in reverse
// with t and u recomputed from the already-rotated words, undo pre-whitening.
func (r *RC6) DecryptBlock(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != RC6BlockSize {
		return nil, fmt.Errorf("%w: ciphertext must be %d bytes, got %d", ErrInvalidBlockSize, RC6BlockSize, len(ciphertext))
	}

	w := bytesToWords(ciphertext)
	a, b, c, d := w[0], w[1], w[2], w[3]

	c = c - r.s[2*r.r+3]
	a = a - r.s[2*r.r+2]

	for i := r.r; i >= 1; i-- {
		a, b, c, d = d, a, b, c

		u := rotl32(d*(2*d+1), 5)
		t := rotl32(b*(2*b+1), 5)
		c = rotr32(c-r.s[2*i+1], t%32) ^ u
		a = rotr32(a-r.s[2*i], u%32) ^ t
	}

	d = d - r.s[1]
	b = b - r.s[0]

	return wordsToBytes([]uint32{a, b, c, d}), nil
}

// EncryptECB pads the plaintext and encrypts it block by block
func (r *RC6) EncryptECB(plaintext []byte) ([]byte, error) {
	return (&ECBMode{}).Encrypt(r, plaintext, nil)
}

// DecryptECB decrypts block by block and strips the padding
func (r *RC6) DecryptECB(ciphertext []byte) ([]byte, error) {
	return (&ECBMode{}).Decrypt(r, ciphertext, nil)
}

// EncryptCBC pads the plaintext and encrypts it with CBC chaining from iv
func (r *RC6) EncryptCBC(plaintext []byte, iv []byte) ([]byte, error) {
	return (&CBCMode{}).Encrypt(r, plaintext, iv)
}

// DecryptCBC decrypts with CBC chaining from iv and strips the padding
func (r *RC6) DecryptCBC(ciphertext []byte, iv []byte) ([]byte, error) {
	return (&CBCMode{}).Decrypt(r, ciphertext, iv)
}

// expandKey derives the round-key schedule from the raw key bytes.
// The key is packed into little-endian words, the schedule is seeded with
// the arithmetic progression p32 + i*q32, then both arrays are mixed over
// 3*max(t,c) steps with two rotating cursors.
func (r *RC6) expandKey(key []byte) {
	L := bytesToWords(key)
	c := len(L)
	if c == 0 {
		L = []uint32{0}
		c = 1
	}
	t := len(r.s)

	r.s[0] = p32
	for i := 1; i < t; i++ {
		r.s[i] = r.s[i-1] + q32
	}

	steps := 3 * t
	if 3*c > steps {
		steps = 3 * c
	}

	a, b := uint32(0), uint32(0)
	i, j := 0, 0
	for k := 0; k < steps; k++ {
		r.s[i] = rotl32(r.s[i]+a+b, 3)
		a = r.s[i]
		L[j] = rotl32(L[j]+a+b, (a+b)%32)
		b = L[j]
		i = (i + 1) % t
		j = (j + 1) % c
	}
}

// rotl32 rotates a 32-bit value left by n bits
func rotl32(x uint32, n uint32) uint32 {
	n %= 32
	return (x << n) | (x >> (32 - n))
}

// rotr32 rotates a 32-bit value right by n bits
func rotr32(x uint32, n uint32) uint32 {
	n %= 32
	return (x >> n) | (x << (32 - n))
}
