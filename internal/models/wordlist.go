package models

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// WordList is a named, author-attributed collection of words used as the
// source for one spelling session. Word keys are unique within the list.
type WordList struct {
	Name       string
	Source     string
	DateEdited string
	Words      map[string]Word
}

// NewWordList creates an empty word list.
func NewWordList(name string) *WordList {
	return &WordList{
		Name:  name,
		Words: make(map[string]Word),
	}
}

// AddWord inserts a word keyed by its text. Returns false if the list
// already holds a word with that key; the existing entry is untouched.
func (l *WordList) AddWord(w Word) bool {
	if _, exists := l.Words[w.Text]; exists {
		return false
	}
	l.Words[w.Text] = w
	return true
}

// RemoveWord deletes a word from the list. Returns false if the word was
// not present.
func (l *WordList) RemoveWord(text string) bool {
	if _, exists := l.Words[text]; !exists {
		return false
	}
	delete(l.Words, text)
	return true
}

// GetWord returns the word stored under the given key.
func (l *WordList) GetWord(text string) (Word, bool) {
	w, ok := l.Words[text]
	return w, ok
}

// Len returns the number of words in the list.
func (l *WordList) Len() int {
	return len(l.Words)
}

// Keys returns the word keys in unspecified order.
func (l *WordList) Keys() []string {
	return lo.Keys(l.Words)
}

// SortedWords returns the words ordered alphabetically, ignoring case,
// the order the list files are written in.
func (l *WordList) SortedWords() []Word {
	keys := lo.Keys(l.Words)
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})
	words := make([]Word, len(keys))
	for i, k := range keys {
		words[i] = l.Words[k]
	}
	return words
}

// AvgWordLength returns the average length of the words in the list, the
// difficulty heuristic the score views display. Zero for an empty list.
func (l *WordList) AvgWordLength() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	total := 0
	for text := range l.Words {
		total += len(text)
	}
	return float64(total) / float64(len(l.Words))
}
