package encryption

import "encoding/binary"

// bytesToWords packs a byte sequence into little-endian 32-bit words.
// A trailing group shorter than 4 bytes is zero-extended, so the result
// always has ceil(len(b)/4) words.
func bytesToWords(b []byte) []uint32 {
	words := make([]uint32, (len(b)+3)/4)
	for i := 0; i < len(b); i++ {
		words[i/4] |= uint32(b[i]) << uint((i%4)*8)
	}
	return words
}

// wordsToBytes is the inverse mapping, always 4*len(words) bytes
func wordsToBytes(words []uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}
