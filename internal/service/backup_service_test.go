package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spellathon/internal/models"
)

type fakeBackupUserStore struct {
	fakeUserStore
	removed int
}

func (s *fakeBackupUserStore) RetrieveAll() ([]*models.User, error) {
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeBackupUserStore) Usernames() ([]string, error) {
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	return names, nil
}

func (s *fakeBackupUserStore) Remove(username string) error {
	delete(s.users, username)
	s.removed++
	return nil
}

func newBackupFixture(t *testing.T) (*BackupService, *fakeBackupUserStore, *fakeWordStore) {
	t.Helper()
	users := &fakeBackupUserStore{fakeUserStore: *newFakeUserStore()}
	words := newFakeWordStore()
	return NewBackupService(users, words, zap.NewNop()), users, words
}

func TestBackupRoundTrip(t *testing.T) {
	svc, users, words := newBackupFixture(t)

	anna := models.NewUser("anna", "Anna Jones", "hash1", "2014-03-01", "")
	anna.AddScore("week one", 7)
	anna.AddScore("week one", 9)
	_, err := users.Add(anna)
	require.NoError(t, err)
	_, err = words.Add(models.NewWord("necessary", "needed", "", models.DifficultyCL5))
	require.NoError(t, err)
	_, err = words.Add(models.NewWord("rhythm", "", "", models.DifficultyCL6))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, svc.Export(path))

	restored, restoredUsers, restoredWords := newBackupFixture(t)
	require.NoError(t, restored.Import(path))

	got, ok := restoredUsers.users["anna"]
	require.True(t, ok)
	assert.Equal(t, "Anna Jones", got.RealName)
	assert.Equal(t, "hash1", got.PasswordHash)
	assert.Equal(t, []int{7, 9}, got.Scores["week one"])

	assert.Len(t, restoredWords.words, 2)
	assert.Equal(t, models.DifficultyCL5, restoredWords.words["necessary"].Difficulty)
	assert.Equal(t, 1, restoredUsers.commits)
	assert.Equal(t, 1, restoredWords.commits)
}

func TestExportShape(t *testing.T) {
	svc, users, words := newBackupFixture(t)
	_, err := users.Add(models.NewUser("anna", "Anna Jones", "hash1", "", ""))
	require.NoError(t, err)
	_, err = words.Add(models.NewWord("cat", "", "", models.DifficultyCL1))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, svc.Export(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var backup BackupData
	require.NoError(t, json.Unmarshal(raw, &backup))
	assert.Equal(t, "1.0", backup.Version)
	assert.False(t, backup.ExportedAt.IsZero())
	require.Len(t, backup.Users, 1)
	require.Len(t, backup.Words, 1)
	assert.Equal(t, "CL1", backup.Words[0].Difficulty)
}

func TestImportSkipsExistingRecords(t *testing.T) {
	svc, users, words := newBackupFixture(t)
	_, err := users.Add(models.NewUser("anna", "Anna Jones", "hash1", "", ""))
	require.NoError(t, err)
	_, err = words.Add(models.NewWord("cat", "", "", models.DifficultyCL1))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, svc.Export(path))

	// Mutate the live records, then re-import the snapshot. The merge
	// must not clobber them.
	users.users["anna"].RealName = "Changed"
	require.NoError(t, svc.Import(path))
	assert.Equal(t, "Changed", users.users["anna"].RealName)
	assert.Len(t, words.words, 1)
}

func TestImportNormalisesBadDifficulty(t *testing.T) {
	svc, _, words := newBackupFixture(t)

	path := filepath.Join(t.TempDir(), "backup.json")
	backup := BackupData{
		Version: "1.0",
		Words:   []WordBackup{{Text: "cat", Difficulty: "bogus"}},
	}
	raw, err := json.Marshal(backup)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	require.NoError(t, svc.Import(path))
	assert.Equal(t, models.DifficultyNone, words.words["cat"].Difficulty)
}

func TestClear(t *testing.T) {
	svc, users, words := newBackupFixture(t)
	_, err := users.Add(models.NewUser("anna", "Anna Jones", "hash1", "", ""))
	require.NoError(t, err)
	_, err = words.Add(models.NewWord("cat", "", "", models.DifficultyCL1))
	require.NoError(t, err)

	require.NoError(t, svc.Clear())
	assert.Empty(t, users.users)
	assert.Empty(t, words.words)
}

func TestImportMissingFile(t *testing.T) {
	svc, _, _ := newBackupFixture(t)
	assert.Error(t, svc.Import(filepath.Join(t.TempDir(), "missing.json")))
}
