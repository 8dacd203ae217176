// Package history ingests streaming-history exports (plain JSON files or ZIP
// archives of them) and aggregates per-album listening totals.
package history

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/logger"
)

// ErrUnsupportedFormat is returned when an archive path has an extension
// other than .json or .zip.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// Record is one raw entry from a streaming-history export. Key names vary by
// exporter; Extract resolves them.
type Record map[string]any

// forEachRecord streams the records of one archive through fn. A plain .json
// file must parse; inside a .zip a corrupt entry is logged and skipped so the
// rest of the archive survives.
func forEachRecord(path string, log *logger.Logger, fn func(Record)) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtJSON:
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if err := emitRecords(f, fn); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil

	case constants.ExtZIP:
		archive, err := zip.OpenReader(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer archive.Close()

		for _, entry := range archive.File {
			if !isHistoryEntry(entry.Name) {
				continue
			}
			if err := emitZipEntry(entry, fn); err != nil {
				log.Warn("Failed to parse archive entry, skipping",
					"entry", entry.Name, "archive", path, "error", err)
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// isHistoryEntry reports whether a ZIP entry name looks like a streaming
// history JSON file.
func isHistoryEntry(name string) bool {
	lowered := strings.ToLower(name)
	if !strings.HasSuffix(lowered, constants.ExtJSON) {
		return false
	}
	for _, pattern := range constants.HistoryNamePatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

func emitZipEntry(entry *zip.File, fn func(Record)) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return emitRecords(rc, fn)
}

// emitRecords decodes a JSON document and passes each mapping element of a
// top-level list to fn. Non-list documents and non-mapping elements yield
// nothing.
func emitRecords(r io.Reader, fn func(Record)) error {
	var root any
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return err
	}
	entries, ok := root.([]any)
	if !ok {
		return nil
	}
	for _, entry := range entries {
		if rec, ok := entry.(map[string]any); ok {
			fn(Record(rec))
		}
	}
	return nil
}
