package encryption

import "errors"

var (
	ErrEmptyKey           = errors.New("key must not be empty")
	ErrInvalidBlockSize   = errors.New("invalid block size")
	ErrInvalidIV          = errors.New("invalid IV length")
	ErrInvalidInputLength = errors.New("input length must be a non-zero multiple of the block size")
)

// BlockCipher is the single-block contract the mode drivers run on top of
type BlockCipher interface {
	// EncryptBlock encrypts exactly one block
	EncryptBlock(plaintext []byte) ([]byte, error)

	// DecryptBlock decrypts exactly one block
	DecryptBlock(ciphertext []byte) ([]byte, error)

	// BlockSize returns the block size in bytes
	BlockSize() int

	// Name returns the algorithm name
	Name() string
}

const (
	RC6BlockSize     = 16 // 128-bit blocks (16 bytes)
	RC6DefaultRounds = 20
)
