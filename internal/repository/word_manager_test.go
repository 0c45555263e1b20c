package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spellathon/internal/database"
	"spellathon/internal/models"
)

func newMockWordManager(t *testing.T) (*WordManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &database.DB{DB: db, Dialect: database.NewSQLiteDialect()}
	return NewWordManager(wrapped, zap.NewNop()), mock
}

func TestWordManagerAdd(t *testing.T) {
	manager, mock := newMockWordManager(t)
	word := models.NewWord("cat", "a small feline", "the cat sat", models.DifficultyCL1)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM words WHERE string = \?`).
		WithArgs("cat").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO words`).
		WithArgs("cat", word.Encode()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	added, err := manager.Add(word)
	assert.NoError(t, err)
	assert.True(t, added)

	assert.NoError(t, manager.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordManagerAddDuplicate(t *testing.T) {
	manager, mock := newMockWordManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM words WHERE string = \?`).
		WithArgs("cat").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	added, err := manager.Add(models.NewWord("cat", "", "", ""))
	assert.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordManagerRetrieve(t *testing.T) {
	manager, mock := newMockWordManager(t)
	stored := models.NewWord("dog", "a loyal companion", "the dog barked", models.DifficultyCL2)

	mock.ExpectQuery(`SELECT word FROM words WHERE string = \?`).
		WithArgs("dog").
		WillReturnRows(sqlmock.NewRows([]string{"word"}).AddRow(stored.Encode()))

	word, err := manager.Retrieve("dog")
	require.NoError(t, err)
	require.NotNil(t, word)
	assert.Equal(t, stored, *word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordManagerRetrieveAbsent(t *testing.T) {
	manager, mock := newMockWordManager(t)

	mock.ExpectQuery(`SELECT word FROM words WHERE string = \?`).
		WithArgs("unicorn").
		WillReturnRows(sqlmock.NewRows([]string{"word"}))

	word, err := manager.Retrieve("unicorn")
	assert.NoError(t, err)
	assert.Nil(t, word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordManagerRetrieveByDifficulty(t *testing.T) {
	manager, mock := newMockWordManager(t)
	easy := models.NewWord("cat", "", "", models.DifficultyCL1)
	hard := models.NewWord("onomatopoeia", "", "", models.DifficultyAL2)

	mock.ExpectQuery(`SELECT word FROM words`).
		WillReturnRows(sqlmock.NewRows([]string{"word"}).
			AddRow(easy.Encode()).
			AddRow(hard.Encode()))

	words, err := manager.RetrieveByDifficulty(models.DifficultyAL2)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "onomatopoeia", words[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordManagerRemove(t *testing.T) {
	manager, mock := newMockWordManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM words WHERE string = \?`).
		WithArgs("cat").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, manager.Remove("cat"))
	assert.NoError(t, manager.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
