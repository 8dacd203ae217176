package history

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cesargomez89/albumdays/internal/logger"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func buildZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return writeTempFile(t, "history.zip", buf.Bytes())
}

func collectRecords(t *testing.T, path string) []Record {
	t.Helper()
	var records []Record
	err := forEachRecord(path, logger.Default(), func(r Record) {
		records = append(records, r)
	})
	if err != nil {
		t.Fatalf("forEachRecord(%s) failed: %v", path, err)
	}
	return records
}

func TestForEachRecord_JSONFile(t *testing.T) {
	path := writeTempFile(t, "endsong_0.json",
		[]byte(`[{"album": "A"}, {"album": "B"}, "not a record", 42]`))

	records := collectRecords(t, path)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["album"] != "A" || records[1]["album"] != "B" {
		t.Errorf("records = %v, want albums A and B in order", records)
	}
}

func TestForEachRecord_JSONRootNotArray(t *testing.T) {
	path := writeTempFile(t, "profile.json", []byte(`{"album": "A"}`))

	if records := collectRecords(t, path); len(records) != 0 {
		t.Errorf("got %d records from non-array root, want 0", len(records))
	}
}

func TestForEachRecord_CorruptJSONFile(t *testing.T) {
	path := writeTempFile(t, "endsong_0.json", []byte(`[{"album":`))

	err := forEachRecord(path, logger.Default(), func(Record) {})
	if err == nil {
		t.Fatal("expected error for corrupt JSON file")
	}
}

func TestForEachRecord_ZIP(t *testing.T) {
	path := buildZip(t, map[string]string{
		"endsong_0.json":                    `[{"album": "A"}]`,
		"Streaming_History_Audio_2023.json": `[{"album": "B"}]`,
		"StreamingHistory0.json":            `[{"album": "C"}]`,
		"ReadMe.pdf":                        "ignored",
		"video_history.json":                `[{"album": "ignored"}]`,
		"endsong_bad.json":                  `not json at all`,
	})

	records := collectRecords(t, path)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	seen := map[string]bool{}
	for _, r := range records {
		seen[r["album"].(string)] = true
	}
	for _, album := range []string{"A", "B", "C"} {
		if !seen[album] {
			t.Errorf("missing record from matching entry, album %q", album)
		}
	}
}

func TestForEachRecord_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "history.csv", []byte("album,artist"))

	err := forEachRecord(path, logger.Default(), func(Record) {})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestForEachRecord_MissingFile(t *testing.T) {
	err := forEachRecord(filepath.Join(t.TempDir(), "nope.json"), logger.Default(), func(Record) {})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
