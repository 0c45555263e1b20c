package models

import (
	"fmt"
	"strings"
)

// Difficulty classifies a word's curriculum level. It is used for
// filtering only, never for scoring.
type Difficulty string

const (
	DifficultyNone Difficulty = "none"
	DifficultyCL1  Difficulty = "CL1"
	DifficultyCL2  Difficulty = "CL2"
	DifficultyCL3  Difficulty = "CL3"
	DifficultyCL4  Difficulty = "CL4"
	DifficultyCL5  Difficulty = "CL5"
	DifficultyCL6  Difficulty = "CL6"
	DifficultyCL7  Difficulty = "CL7"
	DifficultyCL8  Difficulty = "CL8"
	DifficultyAL1  Difficulty = "AL1"
	DifficultyAL2  Difficulty = "AL2"
)

// Difficulties lists every valid difficulty label in display order.
var Difficulties = []Difficulty{
	DifficultyCL1, DifficultyCL2, DifficultyCL3, DifficultyCL4,
	DifficultyCL5, DifficultyCL6, DifficultyCL7, DifficultyCL8,
	DifficultyAL1, DifficultyAL2, DifficultyNone,
}

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

const (
	defaultDefinition = "no definition"
	defaultExample    = "no example"
)

// fieldDelimiter joins serialised entity fields. No ordinary field value
// may contain this byte; validation rejects it at the boundary.
const fieldDelimiter = "|"

// Word represents a dictionary word with a definition, an example use,
// and a difficulty label. Words are immutable once created.
type Word struct {
	Text       string
	Definition string
	Example    string
	Difficulty Difficulty
}

// NewWord creates a word, filling empty metadata with the default
// placeholders the list files use.
func NewWord(text, definition, example string, difficulty Difficulty) Word {
	if definition == "" {
		definition = defaultDefinition
	}
	if example == "" {
		example = defaultExample
	}
	if difficulty == "" {
		difficulty = DifficultyNone
	}
	return Word{
		Text:       text,
		Definition: definition,
		Example:    example,
		Difficulty: difficulty,
	}
}

// Encode serialises the word as delimiter-joined fields, the form stored
// in both the database and the list files.
func (w Word) Encode() string {
	return strings.Join([]string{
		w.Text,
		w.Definition,
		w.Example,
		string(w.Difficulty),
	}, fieldDelimiter)
}

// DecodeWord parses a serialised word. Trailing whitespace is dropped so
// lines read straight from a list file decode cleanly.
func DecodeWord(s string) (Word, error) {
	parts := strings.Split(strings.TrimRight(s, "\r\n"), fieldDelimiter)
	if len(parts) != 4 {
		return Word{}, fmt.Errorf("malformed word record: expected 4 fields, got %d", len(parts))
	}
	return Word{
		Text:       parts[0],
		Definition: parts[1],
		Example:    parts[2],
		Difficulty: Difficulty(strings.TrimSpace(parts[3])),
	}, nil
}

func (w Word) String() string {
	return w.Text
}
