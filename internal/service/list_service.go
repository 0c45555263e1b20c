package service

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"spellathon/internal/models"
	"spellathon/internal/tldr"
	"spellathon/internal/validation"
)

var (
	ErrListNotFound = errors.New("list not found")
	ErrWordNotFound = errors.New("word not found")
	ErrWordInList   = errors.New("word already in list")
)

// WordStore is the slice of the word manager the list service needs.
type WordStore interface {
	Add(word models.Word) (bool, error)
	Remove(text string) error
	RetrieveAll() ([]models.Word, error)
	RetrieveByDifficulty(difficulty models.Difficulty) ([]models.Word, error)
	Commit() error
}

// ListSummary is the row the list-management views display.
type ListSummary struct {
	Name          string
	Source        string
	DateEdited    string
	Words         int
	AvgWordLength float64
}

// ListService manages the word-list files and keeps the global word
// table in step with them.
type ListService struct {
	words    WordStore
	listDir  string
	trashDir string
	logger   *zap.Logger
}

// NewListService creates a new list service over the given directories.
func NewListService(words WordStore, listDir, trashDir string, logger *zap.Logger) *ListService {
	return &ListService{
		words:    words,
		listDir:  listDir,
		trashDir: trashDir,
		logger:   logger,
	}
}

// Lists parses every list in the list directory, keyed by name.
func (s *ListService) Lists() (map[string]*models.WordList, error) {
	return tldr.ParseDir(s.listDir)
}

// List returns the named list.
func (s *ListService) List(name string) (*models.WordList, error) {
	lists, err := tldr.ParseDir(s.listDir)
	if err != nil {
		return nil, err
	}
	list, ok := lists[name]
	if !ok {
		return nil, ErrListNotFound
	}
	return list, nil
}

// Summaries returns one display row per list, sorted by name. The
// average word length is the difficulty heuristic the score views show.
func (s *ListService) Summaries() ([]ListSummary, error) {
	lists, err := tldr.ParseDir(s.listDir)
	if err != nil {
		return nil, err
	}

	summaries := make([]ListSummary, 0, len(lists))
	for _, list := range lists {
		summaries = append(summaries, ListSummary{
			Name:          list.Name,
			Source:        list.Source,
			DateEdited:    list.DateEdited,
			Words:         list.Len(),
			AvgWordLength: list.AvgWordLength(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// CreateList authors a new, empty list file.
func (s *ListService) CreateList(name, author string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	path := tldr.PathFor(s.listDir, name)
	if _, err := s.List(name); err == nil {
		return tldr.ErrListExists
	}
	if err := tldr.WriteEmpty(path, author); err != nil {
		return err
	}
	s.logger.Info("list created", zap.String("list", name), zap.String("author", author))
	return nil
}

// ImportList copies an external list file into the list directory and
// folds its words into the global word table.
func (s *ListService) ImportList(path string) error {
	if err := tldr.Import(path, s.listDir); err != nil {
		return err
	}

	list, err := tldr.ParseFile(path, "import")
	if err != nil {
		return err
	}
	for _, word := range list.Words {
		// Duplicates already in the table are fine.
		if _, err := s.words.Add(word); err != nil {
			return err
		}
	}
	if err := s.words.Commit(); err != nil {
		return fmt.Errorf("failed to commit imported words: %w", err)
	}

	s.logger.Info("list imported", zap.String("path", path), zap.Int("words", list.Len()))
	return nil
}

// ExportList writes the named list to an external destination file.
func (s *ListService) ExportList(name, destPath string) error {
	list, err := s.List(name)
	if err != nil {
		return err
	}
	return tldr.WriteFile(list, destPath)
}

// DeleteList moves the named list's file into the trash directory.
func (s *ListService) DeleteList(name string) error {
	if _, err := s.List(name); err != nil {
		return err
	}
	if err := tldr.Delete(s.listDir, s.trashDir, name); err != nil {
		return err
	}
	s.logger.Info("list deleted", zap.String("list", name))
	return nil
}

// AddWord adds a word to the named list and to the global word table.
func (s *ListService) AddWord(listName string, word models.Word) error {
	if err := validation.ValidateWordText(word.Text); err != nil {
		return err
	}
	if err := validation.ValidateWordDefinition(word.Definition); err != nil {
		return err
	}
	if err := validation.ValidateWordExample(word.Example); err != nil {
		return err
	}
	list, err := s.List(listName)
	if err != nil {
		return err
	}
	if !list.AddWord(word) {
		return ErrWordInList
	}
	if err := tldr.WriteFile(list, tldr.PathFor(s.listDir, listName)); err != nil {
		return err
	}

	if _, err := s.words.Add(word); err != nil {
		return err
	}
	if err := s.words.Commit(); err != nil {
		return fmt.Errorf("failed to commit word: %w", err)
	}
	return nil
}

// RemoveWord removes a word from the named list. The global table keeps
// the word; other lists may still use it.
func (s *ListService) RemoveWord(listName, text string) error {
	list, err := s.List(listName)
	if err != nil {
		return err
	}
	if !list.RemoveWord(text) {
		return ErrWordNotFound
	}
	return tldr.WriteFile(list, tldr.PathFor(s.listDir, listName))
}

// RemoveFromTable deletes a word from the global word table.
func (s *ListService) RemoveFromTable(text string) error {
	if err := s.words.Remove(text); err != nil {
		return err
	}
	return s.words.Commit()
}

// WordsOfDifficulty returns the stored words carrying the given label.
func (s *ListService) WordsOfDifficulty(difficulty models.Difficulty) ([]models.Word, error) {
	return s.words.RetrieveByDifficulty(difficulty)
}
