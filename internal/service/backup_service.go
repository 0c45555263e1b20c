package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"spellathon/internal/models"
)

// BackupData is the complete snapshot structure written to disk.
type BackupData struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	Users      []UserBackup `json:"users"`
	Words      []WordBackup `json:"words"`
}

// UserBackup is a user record in a snapshot.
type UserBackup struct {
	Username     string           `json:"username"`
	RealName     string           `json:"real_name"`
	PasswordHash string           `json:"password_hash"`
	Birthday     string           `json:"birthday,omitempty"`
	Photo        string           `json:"photo,omitempty"`
	Scores       map[string][]int `json:"scores,omitempty"`
}

// WordBackup is a word record in a snapshot.
type WordBackup struct {
	Text       string `json:"text"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Difficulty string `json:"difficulty"`
}

// BackupUserStore is the user persistence surface the backup service needs.
type BackupUserStore interface {
	Add(user *models.User) (bool, error)
	RetrieveAll() ([]*models.User, error)
	Remove(username string) error
	Usernames() ([]string, error)
	Commit() error
}

// BackupWordStore is the word persistence surface the backup service needs.
type BackupWordStore interface {
	Add(word models.Word) (bool, error)
	RetrieveAll() ([]models.Word, error)
	Remove(text string) error
	Commit() error
}

// BackupService exports the word table and user accounts to a JSON
// snapshot and restores them from one.
type BackupService struct {
	users  BackupUserStore
	words  BackupWordStore
	logger *zap.Logger
}

// NewBackupService creates a backup service over the given stores.
func NewBackupService(users BackupUserStore, words BackupWordStore, logger *zap.Logger) *BackupService {
	return &BackupService{users: users, words: words, logger: logger}
}

// Export writes the full database contents to outputPath as JSON.
func (s *BackupService) Export(outputPath string) error {
	users, err := s.users.RetrieveAll()
	if err != nil {
		return fmt.Errorf("failed to read users: %w", err)
	}
	words, err := s.words.RetrieveAll()
	if err != nil {
		return fmt.Errorf("failed to read words: %w", err)
	}

	backup := BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Users:      make([]UserBackup, 0, len(users)),
		Words:      make([]WordBackup, 0, len(words)),
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			Username:     u.Username,
			RealName:     u.RealName,
			PasswordHash: u.PasswordHash,
			Birthday:     u.Birthday,
			Photo:        u.Photo,
			Scores:       u.Scores,
		})
	}
	for _, w := range words {
		backup.Words = append(backup.Words, WordBackup{
			Text:       w.Text,
			Definition: w.Definition,
			Example:    w.Example,
			Difficulty: string(w.Difficulty),
		})
	}
	sort.Slice(backup.Users, func(i, j int) bool { return backup.Users[i].Username < backup.Users[j].Username })
	sort.Slice(backup.Words, func(i, j int) bool { return backup.Words[i].Text < backup.Words[j].Text })

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("backup exported",
		zap.String("path", outputPath),
		zap.Int("users", len(backup.Users)),
		zap.Int("words", len(backup.Words)),
	)
	return nil
}

// Import merges the snapshot at inputPath into the database. Records
// whose key already exists are skipped, not overwritten.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	var usersAdded, wordsAdded int
	for _, ub := range backup.Users {
		user := &models.User{
			Username:     ub.Username,
			RealName:     ub.RealName,
			PasswordHash: ub.PasswordHash,
			Birthday:     ub.Birthday,
			Photo:        ub.Photo,
			Scores:       ub.Scores,
		}
		if user.Scores == nil {
			user.Scores = make(map[string][]int)
		}
		added, err := s.users.Add(user)
		if err != nil {
			return fmt.Errorf("failed to import user %q: %w", ub.Username, err)
		}
		if added {
			usersAdded++
		}
	}
	for _, wb := range backup.Words {
		word := models.Word{
			Text:       wb.Text,
			Definition: wb.Definition,
			Example:    wb.Example,
			Difficulty: models.Difficulty(wb.Difficulty),
		}
		if !word.Difficulty.Valid() {
			word.Difficulty = models.DifficultyNone
		}
		added, err := s.words.Add(word)
		if err != nil {
			return fmt.Errorf("failed to import word %q: %w", wb.Text, err)
		}
		if added {
			wordsAdded++
		}
	}

	if err := s.users.Commit(); err != nil {
		return fmt.Errorf("failed to commit imported users: %w", err)
	}
	if err := s.words.Commit(); err != nil {
		return fmt.Errorf("failed to commit imported words: %w", err)
	}

	s.logger.Info("backup imported",
		zap.String("path", inputPath),
		zap.Int("users_added", usersAdded),
		zap.Int("words_added", wordsAdded),
	)
	return nil
}

// Clear deletes every user and word. The backup tool calls this before
// a replace-style import.
func (s *BackupService) Clear() error {
	usernames, err := s.users.Usernames()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	for _, name := range usernames {
		if err := s.users.Remove(name); err != nil {
			return fmt.Errorf("failed to remove user %q: %w", name, err)
		}
	}

	words, err := s.words.RetrieveAll()
	if err != nil {
		return fmt.Errorf("failed to list words: %w", err)
	}
	for _, w := range words {
		if err := s.words.Remove(w.Text); err != nil {
			return fmt.Errorf("failed to remove word %q: %w", w.Text, err)
		}
	}

	if err := s.users.Commit(); err != nil {
		return fmt.Errorf("failed to commit user removal: %w", err)
	}
	if err := s.words.Commit(); err != nil {
		return fmt.Errorf("failed to commit word removal: %w", err)
	}
	return nil
}
