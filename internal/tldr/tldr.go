// Package tldr reads and writes the flat word-list files. A list file
// starts with two comment lines of metadata (source and last-edited
// date), optionally a third comment line with a word count, and then one
// serialised word per line.
package tldr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spellathon/internal/models"
)

// Extension is the list-file suffix.
const Extension = ".tldr"

// ErrListExists reports an import colliding with an existing list file.
var ErrListExists = errors.New("list already exists")

// ErrNotListFile reports an import source without the list-file suffix.
var ErrNotListFile = errors.New("not a list file")

// ParseFile reads one list file into a WordList named after listname.
func ParseFile(path, listname string) (*models.WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	list := models.NewWordList(listname)

	scanner := bufio.NewScanner(f)
	for i := 0; scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			// The first two comment lines carry the metadata; the
			// count line, when present, is not authoritative.
			switch i {
			case 0:
				list.Source = strings.TrimSpace(line[1:])
			case 1:
				list.DateEdited = strings.TrimSpace(line[1:])
			}
			continue
		}
		if len(strings.TrimSpace(line)) <= 3 {
			continue
		}
		word, err := models.DecodeWord(line)
		if err != nil {
			return nil, fmt.Errorf("malformed line in %s: %w", filepath.Base(path), err)
		}
		list.AddWord(word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}

	return list, nil
}

// ParseDir parses every list file in the directory, keyed by list name
// (the file name without its extension). A missing directory yields an
// empty map.
func ParseDir(dir string) (map[string]*models.WordList, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, fmt.Errorf("failed to scan list directory: %w", err)
	}

	lists := make(map[string]*models.WordList, len(paths))
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), Extension)
		list, err := ParseFile(path, name)
		if err != nil {
			return nil, err
		}
		lists[name] = list
	}
	return lists, nil
}

// WriteFile writes a word list out, refreshing the last-edited metadata
// line. Words are ordered alphabetically ignoring case, one per line.
func WriteFile(list *models.WordList, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create list file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "#%s\n", list.Source)
	fmt.Fprintf(w, "#%s\n", time.Now().Format(time.DateTime))
	fmt.Fprintf(w, "#%d\n", list.Len())

	for _, word := range list.SortedWords() {
		fmt.Fprintln(w, word.Encode())
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write list file: %w", err)
	}
	return nil
}

// WriteEmpty creates a list file with metadata only, the starting point
// for a newly authored list.
func WriteEmpty(path, author string) error {
	content := fmt.Sprintf("#%s\n#%s\n#0\n", author, time.Now().Format(time.DateTime))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to create list file: %w", err)
	}
	return nil
}

// PathFor returns the file path a named list lives at inside dir.
func PathFor(dir, name string) string {
	return filepath.Join(dir, name+Extension)
}

// Import copies an external list file into the list directory. Importing
// over an existing list is refused, as is a source file without the
// list-file suffix, which the directory glob would never see.
func Import(src, dir string) error {
	if filepath.Ext(src) != Extension {
		return ErrNotListFile
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return ErrListExists
	}
	return copyFile(src, dst)
}

// Delete moves a list file into the trash directory, creating it if
// needed, then removes the original. The trash copy is the undo path for
// an accidental delete.
func Delete(dir, trashDir, name string) error {
	src := PathFor(dir, name)

	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return fmt.Errorf("failed to create trash directory: %w", err)
	}
	if err := copyFile(src, filepath.Join(trashDir, name+Extension)); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove list file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(dst), err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy list file: %w", err)
	}
	return out.Close()
}
