package operation

import (
	"fmt"
	"strings"

	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/encryption"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/helpers"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/textenc"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/protocol"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/storage"
)

const (
	DirectionEncrypt = "encrypt"
	DirectionDecrypt = "decrypt"
)

// KeyResolver looks up stored key material by name
type KeyResolver interface {
	Get(ownerID int64, name string) (*storage.CipherKey, error)
}

// Recorder appends audit rows for executed operations
type Recorder interface {
	RecordOperation(userID int64, direction, mode string, inputSize int) (int64, error)
}

// Service executes cipher operations: it resolves key material, converts
// the textual arguments to raw bytes, runs the cipher and converts the
// result back to the requested encoding.
type Service struct {
	keys          KeyResolver
	recorder      Recorder
	defaultRounds int
	logger        *helpers.Logger
}

// NewService creates a new operation service
func NewService(keys KeyResolver, recorder Recorder) *Service {
	return &Service{
		keys:          keys,
		recorder:      recorder,
		defaultRounds: encryption.RC6DefaultRounds,
		logger:        helpers.NewLogger("OperationService"),
	}
}

// SetDefaultRounds overrides the round count applied when a request does
// not name one
func (s *Service) SetDefaultRounds(rounds int) {
	if rounds > 0 {
		s.defaultRounds = rounds
	}
}

// Encrypt runs one encryption operation for a user
func (s *Service) Encrypt(userID int64, req *protocol.CipherRequest) (*protocol.CipherResponse, error) {
	return s.run(userID, DirectionEncrypt, req)
}

// Decrypt runs one decryption operation for a user
func (s *Service) Decrypt(userID int64, req *protocol.CipherRequest) (*protocol.CipherResponse, error) {
	return s.run(userID, DirectionDecrypt, req)
}

func (s *Service) run(userID int64, direction string, req *protocol.CipherRequest) (*protocol.CipherResponse, error) {
	mode := strings.ToUpper(req.Mode)
	driver := encryption.GetMode(mode)
	if driver == nil {
		return nil, fmt.Errorf("unknown mode %q", req.Mode)
	}

	cipher, err := s.resolveCipher(userID, req)
	if err != nil {
		return nil, err
	}

	// Plaintext defaults to utf8 on the way in and ciphertext to hex, in
	// both directions
	inputEncoding := req.InputEncoding
	outputEncoding := req.OutputEncoding
	if direction == DirectionEncrypt {
		if inputEncoding == "" {
			inputEncoding = textenc.UTF8
		}
		if outputEncoding == "" {
			outputEncoding = textenc.Hex
		}
	} else {
		if inputEncoding == "" {
			inputEncoding = textenc.Hex
		}
		if outputEncoding == "" {
			outputEncoding = textenc.UTF8
		}
	}

	input, err := textenc.Decode(req.Input, inputEncoding)
	if err != nil {
		return nil, fmt.Errorf("input: %v", err)
	}

	var iv []byte
	if driver.RequiresIV() {
		ivEncoding := req.IVEncoding
		if ivEncoding == "" {
			ivEncoding = textenc.Hex
		}
		iv, err = textenc.Decode(req.IV, ivEncoding)
		if err != nil {
			return nil, fmt.Errorf("iv: %v", err)
		}
	}

	var out []byte
	if direction == DirectionEncrypt {
		out, err = driver.Encrypt(cipher, input, iv)
	} else {
		out, err = driver.Decrypt(cipher, input, iv)
	}
	if err != nil {
		return nil, err
	}

	encoded, err := textenc.Encode(out, outputEncoding)
	if err != nil {
		return nil, fmt.Errorf("output: %v", err)
	}

	if s.recorder != nil {
		// Audit failure must not fail the operation itself
		if _, err := s.recorder.RecordOperation(userID, direction, mode, len(input)); err != nil {
			s.logger.Warn("failed to record operation", err)
		}
	}

	return &protocol.CipherResponse{
		Output:         encoded,
		OutputEncoding: outputEncoding,
		Mode:           mode,
	}, nil
}

// resolveCipher builds the cipher from either a stored named key or inline
// key text. An empty key is rejected here, before any transform work.
func (s *Service) resolveCipher(userID int64, req *protocol.CipherRequest) (encryption.BlockCipher, error) {
	rounds := req.Rounds

	var material []byte
	if req.KeyName != "" {
		if s.keys == nil {
			return nil, fmt.Errorf("key registry is not available")
		}
		key, err := s.keys.Get(userID, req.KeyName)
		if err != nil {
			return nil, err
		}
		material = key.Material
		if rounds == 0 {
			rounds = key.Rounds
		}
	} else {
		keyEncoding := req.KeyEncoding
		if keyEncoding == "" {
			keyEncoding = textenc.Hex
		}
		decoded, err := textenc.Decode(req.Key, keyEncoding)
		if err != nil {
			return nil, fmt.Errorf("key: %v", err)
		}
		material = decoded
	}

	if len(material) == 0 {
		return nil, encryption.ErrEmptyKey
	}
	if rounds == 0 {
		rounds = s.defaultRounds
	}

	return encryption.NewRC6WithRounds(material, rounds)
}
