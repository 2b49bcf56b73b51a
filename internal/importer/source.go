package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cory-johannsen/umacareer/internal/game/support"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
)

// Bundle is the set of records loaded from one source directory.
type Bundle struct {
	Trainees []trainee.Record
	Supports []support.Record
}

// Source loads records from a format-specific source directory.
//
// Precondition: sourceDir must exist and contain the expected layout for the format.
// Postcondition: returns a Bundle, or a non-nil error.
type Source interface {
	Load(sourceDir string) (*Bundle, error)
}

// JSONSource reads scraped JSON files from the characters/ and supports/
// subdirectories of the source directory. A file holds one document or an
// array of documents; a document is either a bare record or a record nested
// under "itemData".
type JSONSource struct{}

// NewJSONSource returns a JSONSource.
func NewJSONSource() *JSONSource {
	return &JSONSource{}
}

// Load implements Source.
func (JSONSource) Load(sourceDir string) (*Bundle, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", sourceDir)
	}
	trainees, err := loadDir[trainee.Record](filepath.Join(sourceDir, "characters"))
	if err != nil {
		return nil, err
	}
	supports, err := loadDir[support.Record](filepath.Join(sourceDir, "supports"))
	if err != nil {
		return nil, err
	}
	if len(trainees) == 0 && len(supports) == 0 {
		return nil, fmt.Errorf("no records found under %s", sourceDir)
	}
	return &Bundle{Trainees: trainees, Supports: supports}, nil
}

// loadDir reads every *.json file of dir in name order. A missing dir yields no records.
func loadDir[T any](dir string) ([]T, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(paths)
	var out []T
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		recs, err := decodeDocuments[T](data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}

func decodeDocuments[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	var raws []json.RawMessage
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, err
		}
	} else {
		raws = []json.RawMessage{data}
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		rec, err := decodeDocument[T](raw)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeDocument[T any](raw json.RawMessage) (T, error) {
	var rec T
	var wrapped struct {
		ItemData json.RawMessage `json:"itemData"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return rec, err
	}
	if len(wrapped.ItemData) > 0 {
		raw = wrapped.ItemData
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}
