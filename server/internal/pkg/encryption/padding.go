package encryption

// Padder interface defines the padding contract
type Padder interface {
	Pad(data []byte, blockSize int) []byte
	Unpad(data []byte, blockSize int) []byte
	Name() string
}

// PKCS7Padding - byte-value-equals-count padding. Unpad is deliberately
// permissive: only the final byte is inspected, the other trailing bytes are
// not verified. Corrupted or wrongly-keyed ciphertext therefore unpads
// without complaint; this matches the reference behaviour and keeps
// ciphertext interoperable with it.
type PKCS7Padding struct{}

func (p *PKCS7Padding) Name() string {
	return "PKCS7"
}

// Pad appends n bytes of value n, where n = blockSize - len(data) mod
// blockSize. A full padding block is appended when data is already aligned.
func (p *PKCS7Padding) Pad(data []byte, blockSize int) []byte {
	paddingLen := blockSize - (len(data) % blockSize)
	padtext := make([]byte, len(data)+paddingLen)
	copy(padtext, data)
	for i := len(data); i < len(padtext); i++ {
		padtext[i] = byte(paddingLen)
	}
	return padtext
}

// Unpad trims the count named by the final byte when it is in
// [1, blockSize]; anything else leaves the buffer untouched.
func (p *PKCS7Padding) Unpad(data []byte, blockSize int) []byte {
	if len(data) == 0 {
		return data
	}
	paddingLen := int(data[len(data)-1])
	if paddingLen < 1 || paddingLen > blockSize || paddingLen > len(data) {
		return data
	}
	return data[:len(data)-paddingLen]
}
