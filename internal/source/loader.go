// =============================================================================
// Cart Parser - Source Loader
// =============================================================================
//
// This module acquires the complete cart text before validation begins. It is
// the only part of the system that touches the file system for input.
//
// SUPPORTED SOURCES:
//   - Plain text / CSV files: read as-is
//   - XLSX workbooks: the configured sheet (or the first one) is rendered
//     row by row, cells joined with the schema delimiter
//
// Workbook cells are not quoted when rendered, so a cell containing a comma
// will surface as a row error during validation.
//
// =============================================================================

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/schema"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// FILE LOADER
// =============================================================================

// FileLoader loads cart text from the local file system.
type FileLoader struct {
	// Sheet is the workbook sheet to read. Empty means the first sheet.
	Sheet string
}

// NewFileLoader creates a FileLoader reading the given workbook sheet.
func NewFileLoader(sheet string) *FileLoader {
	return &FileLoader{Sheet: sheet}
}

// Load reads the file at path and returns its cart text.
//
// PARAMETERS:
//   - path: The path to a .csv/.txt file or an .xlsx/.xlsm workbook.
//
// RETURNS:
//   - The complete text, header line first.
//   - An error if the file cannot be read.
func (l *FileLoader) Load(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no source path given")
	}

	if IsWorkbook(path) {
		return l.loadWorkbook(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// IsWorkbook reports whether path names a spreadsheet workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// loadWorkbook renders one sheet of a workbook as delimited text.
func (l *FileLoader) loadWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := l.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to read rows from sheet %q: %w", sheetName, err)
	}

	return RenderRows(rows), nil
}

// RenderRows joins each row with the schema delimiter, one line per row.
// Rows without any content become blank lines, which validation skips.
func RenderRows(rows [][]string) string {
	var builder strings.Builder

	for i, row := range rows {
		if i > 0 {
			builder.WriteString("\n")
		}
		if isRowEmpty(row) {
			continue
		}
		builder.WriteString(strings.Join(row, schema.Delimiter))
	}

	return builder.String()
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
