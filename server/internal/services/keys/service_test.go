package keys

import (
	"database/sql"
	"testing"

	"github.com/LFlinn-scottLogic/CyberChef/server/internal/storage"
)

type memStore struct {
	keys   map[int64]map[string]*storage.CipherKey
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{keys: make(map[int64]map[string]*storage.CipherKey)}
}

func (m *memStore) SaveKey(ownerID int64, name string, material []byte, rounds int) (int64, error) {
	if m.keys[ownerID] == nil {
		m.keys[ownerID] = make(map[string]*storage.CipherKey)
	}
	m.nextID++
	m.keys[ownerID][name] = &storage.CipherKey{
		ID:       m.nextID,
		OwnerID:  ownerID,
		Name:     name,
		Material: material,
		Rounds:   rounds,
	}
	return m.nextID, nil
}

func (m *memStore) GetKeyByName(ownerID int64, name string) (*storage.CipherKey, error) {
	return m.keys[ownerID][name], nil
}

func (m *memStore) ListKeys(ownerID int64) ([]*storage.CipherKey, error) {
	var out []*storage.CipherKey
	for _, key := range m.keys[ownerID] {
		out = append(out, key)
	}
	return out, nil
}

func (m *memStore) DeleteKey(ownerID int64, name string) error {
	if m.keys[ownerID][name] == nil {
		return sql.ErrNoRows
	}
	delete(m.keys[ownerID], name)
	return nil
}

func TestSaveAndGet(t *testing.T) {
	svc := NewService(newMemStore())

	keyID, err := svc.Save(1, "prod", []byte("0123456789ABCDEF"), 0)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if keyID == 0 {
		t.Fatal("expected non-zero key ID")
	}

	key, err := svc.Get(1, "prod")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if key.Rounds != 20 {
		t.Errorf("expected default rounds 20, got %d", key.Rounds)
	}
	if string(key.Material) != "0123456789ABCDEF" {
		t.Errorf("unexpected key material")
	}

	// Keys are scoped to their owner
	if _, err := svc.Get(2, "prod"); err == nil {
		t.Error("expected Get to fail for a different owner")
	}
}

func TestSaveValidation(t *testing.T) {
	svc := NewService(newMemStore())

	if _, err := svc.Save(1, "", []byte("0123456789ABCDEF"), 0); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := svc.Save(1, "empty", nil, 0); err == nil {
		t.Error("expected error for empty key material")
	}
	if _, err := svc.Save(1, "badrounds", []byte("0123456789ABCDEF"), -1); err == nil {
		t.Error("expected error for negative rounds")
	}

	if _, err := svc.Save(1, "prod", []byte("0123456789ABCDEF"), 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := svc.Save(1, "prod", []byte("FEDCBA9876543210"), 0); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemStore())

	if _, err := svc.Save(1, "prod", []byte("0123456789ABCDEF"), 12); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := svc.Delete(1, "prod"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(1, "prod"); err == nil {
		t.Error("expected error deleting a missing key")
	}
}
