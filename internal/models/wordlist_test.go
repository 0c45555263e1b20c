package models

import (
	"math"
	"testing"
)

func TestAddWordRejectsDuplicates(t *testing.T) {
	list := NewWordList("week one")

	if !list.AddWord(NewWord("cat", "a small feline", "", DifficultyCL1)) {
		t.Fatal("AddWord() = false for a new word")
	}
	if list.AddWord(NewWord("cat", "a different definition", "", DifficultyCL2)) {
		t.Error("AddWord() = true for a duplicate word")
	}

	got, ok := list.GetWord("cat")
	if !ok {
		t.Fatal("GetWord() did not find the word")
	}
	if got.Definition != "a small feline" {
		t.Errorf("duplicate add overwrote the existing entry: %+v", got)
	}
}

func TestRemoveWord(t *testing.T) {
	list := NewWordList("week one")
	list.AddWord(NewWord("cat", "", "", ""))

	if !list.RemoveWord("cat") {
		t.Error("RemoveWord() = false for a present word")
	}
	if list.RemoveWord("cat") {
		t.Error("RemoveWord() = true for an absent word")
	}
	if list.Len() != 0 {
		t.Errorf("Len() = %d, want 0", list.Len())
	}
}

func TestSortedWordsIgnoresCase(t *testing.T) {
	list := NewWordList("week one")
	list.AddWord(NewWord("Zebra", "", "", ""))
	list.AddWord(NewWord("apple", "", "", ""))
	list.AddWord(NewWord("Mango", "", "", ""))

	got := list.SortedWords()
	want := []string{"apple", "Mango", "Zebra"}
	if len(got) != len(want) {
		t.Fatalf("SortedWords() returned %d words, want %d", len(got), len(want))
	}
	for i, w := range got {
		if w.Text != want[i] {
			t.Errorf("SortedWords()[%d] = %q, want %q", i, w.Text, want[i])
		}
	}
}

func TestAvgWordLength(t *testing.T) {
	list := NewWordList("week one")
	if list.AvgWordLength() != 0 {
		t.Errorf("AvgWordLength() = %v for an empty list, want 0", list.AvgWordLength())
	}

	list.AddWord(NewWord("cat", "", "", ""))
	list.AddWord(NewWord("horse", "", "", ""))

	if got := list.AvgWordLength(); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("AvgWordLength() = %v, want 4.0", got)
	}
}

func TestKeysCoverEveryWord(t *testing.T) {
	list := NewWordList("week one")
	list.AddWord(NewWord("cat", "", "", ""))
	list.AddWord(NewWord("dog", "", "", ""))

	keys := list.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() returned %d keys, want 2", len(keys))
	}
	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen["cat"] || !seen["dog"] {
		t.Errorf("Keys() = %v, want cat and dog", keys)
	}
}
