package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.csv"))
	touch(t, filepath.Join(dir, "a.xlsx"))
	touch(t, filepath.Join(dir, "c.xlsm"))
	touch(t, filepath.Join(dir, "notes.md"))
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	fm := NewFileManager(dir, "", "", "")
	files, err := fm.DiscoverInputFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.xlsx" || filepath.Base(files[1]) != "b.csv" || filepath.Base(files[2]) != "c.xlsm" {
		t.Fatalf("expected sorted files, got %v", files)
	}

	only, err := fm.DiscoverInputFiles("*.csv", "b.*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(only) != 1 {
		t.Fatalf("expected duplicates to collapse, got %v", only)
	}
}

func TestEnsureDirectoriesAndArchive(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(
		filepath.Join(root, "in"),
		filepath.Join(root, "out"),
		filepath.Join(root, "archive"),
		filepath.Join(root, "errors"),
	)
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir, fm.ErrorLogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("missing directory %s", dir)
		}
	}

	src := filepath.Join(fm.InputDir, "cart.csv")
	touch(t, src)
	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived != filepath.Join(fm.InputArchiveDir, "cart.csv") {
		t.Fatalf("unexpected archive path %s", archived)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be moved")
	}
	if _, err := os.Stat(archived); err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
}

func TestArchiveInputFileTimestampSubdirs(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(root, "", filepath.Join(root, "archive"), "")
	fm.UseTimestampSubdirs = true

	src := filepath.Join(root, "cart.csv")
	touch(t, src)

	before := time.Now()
	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}

	rel, err := filepath.Rel(fm.InputArchiveDir, archived)
	if err != nil {
		t.Fatalf("archive path outside archive dir: %v", err)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 4 || parts[3] != "cart.csv" {
		t.Fatalf("expected YYYY/MM/DD/cart.csv, got %s", rel)
	}
	if parts[0] != before.Format("2006") && parts[0] != time.Now().Format("2006") {
		t.Fatalf("unexpected year directory %s", parts[0])
	}
	if len(parts[1]) != 2 || len(parts[2]) != 2 {
		t.Fatalf("month and day must be zero padded: %s", rel)
	}
	if _, err := os.Stat(archived); err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
}

func TestWriteOutputFile(t *testing.T) {
	fm := NewFileManager("", t.TempDir(), "", "")
	path, err := fm.WriteOutputFile("cart.json", []byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{}" {
		t.Fatalf("unexpected content %q, %v", data, err)
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	got := GenerateOutputFileName("{name}_report", map[string]string{"name": "cart"}, ".json")
	if got != "cart_report.json" {
		t.Fatalf("unexpected name %q", got)
	}

	if got := GenerateOutputFileName("cart.xml", nil, ".xml"); got != "cart.xml" {
		t.Fatalf("extension must not be doubled, got %q", got)
	}

	withID := GenerateOutputFileName("{uuid}", nil, ".xml")
	if _, err := uuid.Parse(strings.TrimSuffix(withID, ".xml")); err != nil {
		t.Fatalf("expected a UUID name, got %q", withID)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("/tmp/in/cart.2024.csv"); got != "cart.2024" {
		t.Fatalf("unexpected base name %q", got)
	}
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	if path, err := WriteErrorLog("cart.csv", nil, dir); err != nil || path != "" {
		t.Fatalf("expected no log for no entries, got %q, %v", path, err)
	}

	path, err := WriteErrorLog("/data/cart.csv", []ErrorLogEntry{
		{Kind: "header", Row: 0, Column: 0, Message: `Expected header to be named "Product name" but received "Product".`},
		{Kind: "row", Row: 1, Column: 0, Message: "Expected row to have 3 cells but received 2."},
	}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "cart_errors_") {
		t.Fatalf("unexpected log name %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	for _, want := range []string{"Total Errors: 2", "Error #2", "Type:    row", "received 2."} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	summary := ProcessingSummary{
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalItems:      5,
		GrandTotal:      348.32,
		ProcessedFiles:  []ProcessedFileInfo{{InputFile: "a.csv", OutputFile: "a.json", Items: 5, Total: 348.32}},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.csv", ErrorMessage: "validation failed", ErrorLog: "b_errors.txt"}},
	}

	var buf bytes.Buffer
	if err := writeSummary(&buf, summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Grand Total:        348.32", "Duration:       2s", "Log:   b_errors.txt", "Input:        a.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	path, err := WriteSummaryLog(summary, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("summary missing: %v", err)
	}
}
