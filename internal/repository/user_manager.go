package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"spellathon/internal/database"
	"spellathon/internal/models"
)

// UserManager manages user records in the store, keyed by username.
type UserManager struct {
	txHolder
	logger *zap.Logger
}

// NewUserManager creates a user manager over the given database.
func NewUserManager(db *database.DB, logger *zap.Logger) *UserManager {
	return &UserManager{
		txHolder: txHolder{db: db},
		logger:   logger,
	}
}

// Add inserts a user. Returns false, without error, when a user with
// that username already exists; the existing record is untouched.
func (m *UserManager) Add(user *models.User) (bool, error) {
	q, err := m.writer()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var count int
	if err := q.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", user.Username).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	encoded, err := user.Encode()
	if err != nil {
		return false, err
	}
	if _, err := q.Exec("INSERT INTO users (username, data) VALUES (?, ?)", user.Username, encoded); err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}

	m.logger.Debug("user added", zap.String("username", user.Username))
	return true, nil
}

// Retrieve returns the user stored under the given username, or nil when
// no such user exists.
func (m *UserManager) Retrieve(username string) (*models.User, error) {
	var encoded string
	err := m.reader().QueryRow("SELECT data FROM users WHERE username = ?", username).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return models.DecodeUser(encoded)
}

// RetrieveAll returns every stored user, order unspecified.
func (m *UserManager) RetrieveAll() ([]*models.User, error) {
	rows, err := m.reader().Query("SELECT data FROM users")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, err
		}
		user, err := models.DecodeUser(encoded)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Usernames returns every stored username, order unspecified.
func (m *UserManager) Usernames() ([]string, error) {
	rows, err := m.reader().Query("SELECT username FROM users")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve usernames: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}

// Update overwrites the record at the user's username. The caller must
// have retrieved the user first; updating an absent key writes nothing.
func (m *UserManager) Update(user *models.User) error {
	q, err := m.writer()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	encoded, err := user.Encode()
	if err != nil {
		return err
	}
	if _, err := q.Exec("UPDATE users SET data = ? WHERE username = ?", encoded, user.Username); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Remove deletes the user stored under the given username. No-op when
// absent.
func (m *UserManager) Remove(username string) error {
	q, err := m.writer()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := q.Exec("DELETE FROM users WHERE username = ?", username); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	return nil
}

// Commit finalises the mutations made since the last commit or discard.
func (m *UserManager) Commit() error {
	return m.commit()
}

// Discard abandons the mutations made since the last commit or discard.
func (m *UserManager) Discard() error {
	return m.discard()
}
