package keys

import (
	"fmt"

	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/encryption"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/pkg/helpers"
	"github.com/LFlinn-scottLogic/CyberChef/server/internal/storage"
)

// Service manages per-user named cipher keys
type Service struct {
	store Store
}

// Store defines the persistence interface
type Store interface {
	SaveKey(ownerID int64, name string, material []byte, rounds int) (int64, error)
	GetKeyByName(ownerID int64, name string) (*storage.CipherKey, error)
	ListKeys(ownerID int64) ([]*storage.CipherKey, error)
	DeleteKey(ownerID int64, name string) error
}

// NewService creates a new key registry service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Save stores key material under a name. The material must be usable by the
// cipher, so it is rejected up front if the constructor would reject it.
func (s *Service) Save(ownerID int64, name string, material []byte, rounds int) (int64, error) {
	if err := helpers.ValidateKeyName(name); err != nil {
		return 0, err
	}
	if rounds == 0 {
		rounds = encryption.RC6DefaultRounds
	}

	if _, err := encryption.NewRC6WithRounds(material, rounds); err != nil {
		return 0, err
	}

	existing, err := s.store.GetKeyByName(ownerID, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("key %q already exists", name)
	}

	return s.store.SaveKey(ownerID, name, material, rounds)
}

// Get retrieves a key by name
func (s *Service) Get(ownerID int64, name string) (*storage.CipherKey, error) {
	key, err := s.store.GetKeyByName(ownerID, name)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("key %q not found", name)
	}
	return key, nil
}

// List returns all keys owned by a user
func (s *Service) List(ownerID int64) ([]*storage.CipherKey, error) {
	return s.store.ListKeys(ownerID)
}

// Delete removes a key by name
func (s *Service) Delete(ownerID int64, name string) error {
	return s.store.DeleteKey(ownerID, name)
}
