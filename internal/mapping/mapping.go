// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapping reads and writes the citation → arXiv mapping, the
// pipeline's only durable artifact. The format follows the file extension:
// YAML for .yaml/.yml, JSON otherwise.
package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citemap/pkg/types"
)

// DefaultFile is the mapping filename both stages agree on.
const DefaultFile = "arxiv_mappings.json"

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Marshal encodes entries in the format selected by path. JSON output is
// indented by two spaces and keeps non-ASCII text unescaped.
func Marshal(path string, entries []types.MappingEntry) ([]byte, error) {
	if entries == nil {
		entries = []types.MappingEntry{}
	}

	if isYAML(path) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces the mapping at path. Data goes to a temporary file in the
// same directory first, so readers never observe a partial mapping.
func Write(path string, entries []types.MappingEntry) error {
	data, err := Marshal(path, entries)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".mapping-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing mapping: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Read loads the mapping at path. A missing file returns an error wrapping
// fs.ErrNotExist.
func Read(path string) ([]types.MappingEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping: %w", err)
	}

	var entries []types.MappingEntry
	if isYAML(path) {
		err = yaml.Unmarshal(data, &entries)
	} else {
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing mapping %s: %w", path, err)
	}
	return entries, nil
}
