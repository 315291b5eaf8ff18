package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DB wraps the database connection and provides query methods
type DB struct {
	conn *sql.DB
}

// Config contains database connection configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// User is a registered account row
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	CreatedAt      int64
}

// CipherKey is one named key in a user's registry
type CipherKey struct {
	ID        int64
	OwnerID   int64
	Name      string
	Material  []byte
	Rounds    int
	CreatedAt int64
}

// Operation is one audit row for an executed cipher operation
type Operation struct {
	ID        int64
	UserID    int64
	Direction string
	Mode      string
	InputSize int
	CreatedAt int64
}

// New creates a new database connection
func New(cfg Config) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates all database tables
func (db *DB) InitSchema() error {
	schema := `
	-- Users table
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		hashed_password VARCHAR(255) NOT NULL,
		created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);

	-- Per-user key registry
	CREATE TABLE IF NOT EXISTS cipher_keys (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		material BYTEA NOT NULL,
		rounds INT NOT NULL DEFAULT 20,
		created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
		UNIQUE(owner_id, name)
	);

	-- Audit log of executed operations
	CREATE TABLE IF NOT EXISTS operations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		direction VARCHAR(10) NOT NULL,
		mode VARCHAR(10) NOT NULL,
		input_size INT NOT NULL,
		created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_cipher_keys_owner_id ON cipher_keys(owner_id);
	CREATE INDEX IF NOT EXISTS idx_operations_user_id ON operations(user_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// User operations

// CreateUser creates a new user with hashed password
func (db *DB) CreateUser(username, hashedPassword string) (int64, error) {
	var id int64
	err := db.conn.QueryRow(
		"INSERT INTO users (username, hashed_password) VALUES ($1, $2) RETURNING id",
		username, hashedPassword,
	).Scan(&id)
	return id, err
}

// GetUserByID retrieves a user by ID
func (db *DB) GetUserByID(userID int64) (*User, error) {
	user := &User{}
	err := db.conn.QueryRow(
		"SELECT id, username, hashed_password, created_at FROM users WHERE id = $1",
		userID,
	).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// GetUserByUsername retrieves a user by username
func (db *DB) GetUserByUsername(username string) (*User, error) {
	user := &User{}
	err := db.conn.QueryRow(
		"SELECT id, username, hashed_password, created_at FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// Key registry operations

// SaveKey stores key material under a name for a user
func (db *DB) SaveKey(ownerID int64, name string, material []byte, rounds int) (int64, error) {
	var id int64
	err := db.conn.QueryRow(
		"INSERT INTO cipher_keys (owner_id, name, material, rounds) VALUES ($1, $2, $3, $4) RETURNING id",
		ownerID, name, material, rounds,
	).Scan(&id)
	return id, err
}

// GetKeyByName retrieves a user's key by name
func (db *DB) GetKeyByName(ownerID int64, name string) (*CipherKey, error) {
	key := &CipherKey{}
	err := db.conn.QueryRow(
		"SELECT id, owner_id, name, material, rounds, created_at FROM cipher_keys WHERE owner_id = $1 AND name = $2",
		ownerID, name,
	).Scan(&key.ID, &key.OwnerID, &key.Name, &key.Material, &key.Rounds, &key.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return key, err
}

// ListKeys lists all keys owned by a user, newest first
func (db *DB) ListKeys(ownerID int64) ([]*CipherKey, error) {
	rows, err := db.conn.Query(
		"SELECT id, owner_id, name, material, rounds, created_at FROM cipher_keys WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*CipherKey
	for rows.Next() {
		key := &CipherKey{}
		if err := rows.Scan(&key.ID, &key.OwnerID, &key.Name, &key.Material, &key.Rounds, &key.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// DeleteKey removes a user's key by name
func (db *DB) DeleteKey(ownerID int64, name string) error {
	result, err := db.conn.Exec(
		"DELETE FROM cipher_keys WHERE owner_id = $1 AND name = $2",
		ownerID, name,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Audit log operations

// RecordOperation appends one audit row
func (db *DB) RecordOperation(userID int64, direction, mode string, inputSize int) (int64, error) {
	var id int64
	err := db.conn.QueryRow(
		"INSERT INTO operations (user_id, direction, mode, input_size) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, direction, mode, inputSize,
	).Scan(&id)
	return id, err
}

// ListOperations lists a user's most recent operations
func (db *DB) ListOperations(userID int64, limit int) ([]*Operation, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, direction, mode, input_size, created_at FROM operations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []*Operation
	for rows.Next() {
		op := &Operation{}
		if err := rows.Scan(&op.ID, &op.UserID, &op.Direction, &op.Mode, &op.InputSize, &op.CreatedAt); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
