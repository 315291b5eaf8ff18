// Package textenc converts between the textual encodings accepted by the
// operation API and raw byte sequences.
package textenc

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	Hex    = "hex"
	Base64 = "base64"
	UTF8   = "utf8"
	Latin1 = "latin1"
)

// Decode converts text in the named encoding to raw bytes
func Decode(text, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case Hex:
		b, err := hex.DecodeString(strings.ReplaceAll(text, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex: %v", err)
		}
		return b, nil
	case Base64:
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %v", err)
		}
		return b, nil
	case UTF8, "":
		return []byte(text), nil
	case Latin1:
		b := make([]byte, 0, len(text))
		for _, r := range text {
			if r > 0xFF {
				return nil, fmt.Errorf("character %q is outside Latin-1", r)
			}
			b = append(b, byte(r))
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// Encode converts raw bytes to text in the named encoding
func Encode(data []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case Hex, "":
		return hex.EncodeToString(data), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(data), nil
	case UTF8:
		return string(data), nil
	case Latin1:
		var sb strings.Builder
		for _, b := range data {
			sb.WriteRune(rune(b))
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unknown encoding %q", encoding)
	}
}
