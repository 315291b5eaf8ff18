package encryption

import "fmt"

// Mode interface defines the chaining-mode contract. The drivers own the
// padding boundary: Encrypt pads its input, Decrypt unpads its output.
type Mode interface {
	Encrypt(cipher BlockCipher, plaintext []byte, iv []byte) ([]byte, error)
	Decrypt(cipher BlockCipher, ciphertext []byte, iv []byte) ([]byte, error)
	RequiresIV() bool
	Name() string
}

// ECBMode - Electronic Codebook Mode (no IV required)
type ECBMode struct{}

func (e *ECBMode) Name() string {
	return "ECB"
}

func (e *ECBMode) RequiresIV() bool {
	return false
}

func (e *ECBMode) Encrypt(cipher BlockCipher, plaintext []byte, iv []byte) ([]byte, error) {
	blockSize := cipher.BlockSize()
	padder := &PKCS7Padding{}
	padded := padder.Pad(plaintext, blockSize)

	ciphertext := make([]byte, len(padded))
	for i := 0; i < len(padded); i += blockSize {
		block, err := cipher.EncryptBlock(padded[i : i+blockSize])
		if err != nil {
			return nil, err
		}
		copy(ciphertext[i:], block)
	}

	return ciphertext, nil
}

func (e *ECBMode) Decrypt(cipher BlockCipher, ciphertext []byte, iv []byte) ([]byte, error) {
	blockSize := cipher.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidInputLength, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += blockSize {
		block, err := cipher.DecryptBlock(ciphertext[i : i+blockSize])
		if err != nil {
			return nil, err
		}
		copy(plaintext[i:], block)
	}

	padder := &PKCS7Padding{}
	return padder.Unpad(plaintext, blockSize), nil
}

// CBCMode - Cipher Block Chaining Mode. The rolling "previous block" is
// scoped to a single call; the IV seeds it and is not retained.
type CBCMode struct{}

func (c *CBCMode) Name() string {
	return "CBC"
}

func (c *CBCMode) RequiresIV() bool {
	return true
}

func (c *CBCMode) Encrypt(cipher BlockCipher, plaintext []byte, iv []byte) ([]byte, error) {
	blockSize := cipher.BlockSize()
	if len(iv) != blockSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidIV, blockSize, len(iv))
	}

	padder := &PKCS7Padding{}
	padded := padder.Pad(plaintext, blockSize)

	ciphertext := make([]byte, len(padded))
	prevCipherBlock := make([]byte, blockSize)
	copy(prevCipherBlock, iv)

	for i := 0; i < len(padded); i += blockSize {
		// XOR plaintext with previous ciphertext
		block := make([]byte, blockSize)
		for j := 0; j < blockSize; j++ {
			block[j] = padded[i+j] ^ prevCipherBlock[j]
		}

		encryptedBlock, err := cipher.EncryptBlock(block)
		if err != nil {
			return nil, err
		}
		copy(ciphertext[i:], encryptedBlock)
		copy(prevCipherBlock, encryptedBlock)
	}

	return ciphertext, nil
}

func (c *CBCMode) Decrypt(cipher BlockCipher, ciphertext []byte, iv []byte) ([]byte, error) {
	blockSize := cipher.BlockSize()
	if len(iv) != blockSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidIV, blockSize, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidInputLength, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	prevCipherBlock := make([]byte, blockSize)
	copy(prevCipherBlock, iv)

	for i := 0; i < len(ciphertext); i += blockSize {
		decryptedBlock, err := cipher.DecryptBlock(ciphertext[i : i+blockSize])
		if err != nil {
			return nil, err
		}

		// XOR with previous ciphertext; the ciphertext block, not the
		// recovered plaintext, rolls forward as the chaining state
		for j := 0; j < blockSize; j++ {
			plaintext[i+j] = decryptedBlock[j] ^ prevCipherBlock[j]
		}
		copy(prevCipherBlock, ciphertext[i:i+blockSize])
	}

	padder := &PKCS7Padding{}
	return padder.Unpad(plaintext, blockSize), nil
}

// GetMode returns a Mode implementation for the given mode name
func GetMode(modeName string) Mode {
	switch modeName {
	case "ECB":
		return &ECBMode{}
	case "CBC":
		return &CBCMode{}
	default:
		return nil
	}
}
