// Package excel reads word lists out of spreadsheet files so teachers
// can prepare them in Excel or export them from a school system as CSV.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"spellathon/internal/models"
)

// ImportConfig defines where each word field lives in the sheet.
type ImportConfig struct {
	FilePath         string // path to the .xlsx or .csv file
	WordColumn       string // column with the word
	DefinitionColumn string // column with the definition
	ExampleColumn    string // column with the usage example
	DifficultyColumn string // column with the difficulty label
	SheetName        string // sheet to import, Excel only
	StartRow         int    // first data row, 1-based
}

// DefaultImportConfig returns the layout the bundled template uses:
// word, definition, example, difficulty in columns A-D with a header
// row.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:         path,
		WordColumn:       "A",
		DefinitionColumn: "B",
		ExampleColumn:    "C",
		DifficultyColumn: "D",
		SheetName:        "Sheet1",
		StartRow:         2,
	}
}

// ImportResult summarises an import run.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords reads word rows from an Excel or CSV file. Rows with an
// empty word cell are skipped and malformed rows are reported in the
// result rather than aborting the run.
func ImportWords(config ImportConfig) ([]models.Word, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

func importFromExcel(config ImportConfig) ([]models.Word, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	words := make([]models.Word, 0, len(rows))

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word, err := rowToWord(row, config)
		if err != nil {
			if errors.Is(err, errEmptyRow) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		words = append(words, word)
		result.Imported++
	}

	return words, result, nil
}

func importFromCSV(config ImportConfig) ([]models.Word, *ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	var words []models.Word

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		word, err := rowToWord(row, config)
		if err != nil {
			if errors.Is(err, errEmptyRow) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		words = append(words, word)
		result.Imported++
	}

	return words, result, nil
}

var errEmptyRow = errors.New("empty row")

func rowToWord(row []string, config ImportConfig) (models.Word, error) {
	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	text := cell(config.WordColumn)
	if text == "" {
		return models.Word{}, errEmptyRow
	}
	definition := cell(config.DefinitionColumn)
	example := cell(config.ExampleColumn)
	for _, field := range []string{text, definition, example} {
		if strings.ContainsAny(field, "|\n") {
			return models.Word{}, fmt.Errorf("word %q contains a reserved character", text)
		}
	}

	raw := cell(config.DifficultyColumn)
	difficulty := models.DifficultyNone
	if raw != "" && !strings.EqualFold(raw, string(models.DifficultyNone)) {
		difficulty = models.Difficulty(strings.ToUpper(raw))
		if !difficulty.Valid() {
			return models.Word{}, fmt.Errorf("unknown difficulty %q", raw)
		}
	}

	return models.NewWord(text, definition, example, difficulty), nil
}

// columnToIndex converts a spreadsheet column name like "A" or "AB" to a
// zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return -1
		}
		idx = idx*26 + int(c-'A') + 1
	}
	return idx - 1
}
