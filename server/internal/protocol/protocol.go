package protocol

// EncryptionAlgorithm type for available algorithms
type EncryptionAlgorithm string

const (
	RC6 EncryptionAlgorithm = "RC6"
)

// EncryptionMode type for block cipher modes
type EncryptionMode string

const (
	ECB EncryptionMode = "ECB"
	CBC EncryptionMode = "CBC"
)

// TextEncoding type for the textual forms accepted on the wire
type TextEncoding string

const (
	Hex    TextEncoding = "hex"
	Base64 TextEncoding = "base64"
	UTF8   TextEncoding = "utf8"
	Latin1 TextEncoding = "latin1"
)

// User represents a registered user
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	CreatedAt      int64
}

// CipherKey represents a key stored in a user's registry
type CipherKey struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"-"`
	Name      string `json:"name"`
	Material  []byte `json:"-"`
	Rounds    int    `json:"rounds"`
	CreatedAt int64  `json:"created_at"`
}

// OperationRecord is one audit row for an executed cipher operation
type OperationRecord struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Direction string `json:"direction"` // "encrypt" or "decrypt"
	Mode      string `json:"mode"`
	InputSize int    `json:"input_size"`
	CreatedAt int64  `json:"created_at"`
}

// CipherRequest is one encrypt or decrypt operation as submitted by a
// client over HTTP or WebSocket. Key material arrives either inline via
// Key/KeyEncoding or by KeyName lookup in the caller's registry.
type CipherRequest struct {
	Input          string `json:"input"`
	InputEncoding  string `json:"input_encoding,omitempty"`  // utf8 for encrypt, hex for decrypt by default
	OutputEncoding string `json:"output_encoding,omitempty"` // hex by default
	Key            string `json:"key,omitempty"`
	KeyEncoding    string `json:"key_encoding,omitempty"` // hex by default
	KeyName        string `json:"key_name,omitempty"`
	IV             string `json:"iv,omitempty"`
	IVEncoding     string `json:"iv_encoding,omitempty"` // hex by default
	Mode           string `json:"mode"`                  // ECB or CBC
	Rounds         int    `json:"rounds,omitempty"`      // 0 means the default round count
}

// CipherResponse carries the encoded result of a cipher operation
type CipherResponse struct {
	Output         string `json:"output,omitempty"`
	OutputEncoding string `json:"output_encoding,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Error          string `json:"error,omitempty"`
}

// WebSocketRequest is the envelope for interactive cipher operations
type WebSocketRequest struct {
	ID        string        `json:"id"`
	Direction string        `json:"direction"` // "encrypt" or "decrypt"
	Request   CipherRequest `json:"request"`
}

// WebSocketResponse is the reply envelope, matched to a request by ID
type WebSocketResponse struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"` // "success", "error"
	Response  CipherResponse `json:"response"`
	Timestamp int64          `json:"timestamp"`
}

// SaveKeyRequest stores key material under a name in the caller's registry
type SaveKeyRequest struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	KeyEncoding string `json:"key_encoding,omitempty"`
	Rounds      int    `json:"rounds,omitempty"`
}
