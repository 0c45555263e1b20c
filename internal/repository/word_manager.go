package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"spellathon/internal/database"
	"spellathon/internal/models"
)

// WordManager manages the global word table, keyed by the word text.
type WordManager struct {
	txHolder
	logger *zap.Logger
}

// NewWordManager creates a word manager over the given database.
func NewWordManager(db *database.DB, logger *zap.Logger) *WordManager {
	return &WordManager{
		txHolder: txHolder{db: db},
		logger:   logger,
	}
}

// Add inserts a word. Returns false, without error, when the word is
// already in the table; the existing record is untouched.
func (m *WordManager) Add(word models.Word) (bool, error) {
	q, err := m.writer()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var count int
	if err := q.QueryRow("SELECT COUNT(*) FROM words WHERE string = ?", word.Text).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check for existing word: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := q.Exec("INSERT INTO words (string, word) VALUES (?, ?)", word.Text, word.Encode()); err != nil {
		return false, fmt.Errorf("failed to insert word: %w", err)
	}

	m.logger.Debug("word added", zap.String("word", word.Text))
	return true, nil
}

// Retrieve returns the word stored under the given text, or nil when no
// such word exists.
func (m *WordManager) Retrieve(text string) (*models.Word, error) {
	var encoded string
	err := m.reader().QueryRow("SELECT word FROM words WHERE string = ?", text).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve word: %w", err)
	}
	word, err := models.DecodeWord(encoded)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// RetrieveAll returns every stored word, order unspecified.
func (m *WordManager) RetrieveAll() ([]models.Word, error) {
	rows, err := m.reader().Query("SELECT word FROM words")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, err
		}
		word, err := models.DecodeWord(encoded)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// RetrieveByDifficulty returns every stored word with the given
// difficulty label. The label lives inside the serialised record, so the
// filter runs over the decoded rows.
func (m *WordManager) RetrieveByDifficulty(difficulty models.Difficulty) ([]models.Word, error) {
	all, err := m.RetrieveAll()
	if err != nil {
		return nil, err
	}

	var words []models.Word
	for _, word := range all {
		if word.Difficulty == difficulty {
			words = append(words, word)
		}
	}
	return words, nil
}

// Remove deletes the word stored under the given text. No-op when absent.
func (m *WordManager) Remove(text string) error {
	q, err := m.writer()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := q.Exec("DELETE FROM words WHERE string = ?", text); err != nil {
		return fmt.Errorf("failed to remove word: %w", err)
	}
	return nil
}

// Commit finalises the mutations made since the last commit or discard.
func (m *WordManager) Commit() error {
	return m.commit()
}

// Discard abandons the mutations made since the last commit or discard.
func (m *WordManager) Discard() error {
	return m.discard()
}
