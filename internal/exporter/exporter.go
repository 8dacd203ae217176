// Package exporter reads and writes the persisted album-set document.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/domain"
)

// Document is the persisted album-set file: a generation timestamp plus the
// ordered album list.
type Document struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Albums      []domain.AlbumListening `json:"albums"`
}

// Serialize renders albums as an indented JSON document stamped with the
// current UTC time.
func Serialize(albums []domain.AlbumListening) ([]byte, error) {
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Albums:      albums,
	}
	if doc.Albums == nil {
		doc.Albums = []domain.AlbumListening{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize albums: %w", err)
	}
	return data, nil
}

// Export writes the serialized album set to path.
func Export(albums []domain.AlbumListening, path string) error {
	data, err := Serialize(albums)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Parse decodes a serialized album-set document.
func Parse(data []byte) ([]domain.AlbumListening, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse album document: %w", err)
	}
	return doc.Albums, nil
}

// Load reads and decodes the album-set document at path.
func Load(path string) ([]domain.AlbumListening, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}
