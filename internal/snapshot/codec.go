// Package snapshot encodes and decodes task snapshots as JSON or YAML.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"task-manager/internal/domain"
)

// Format names a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q", s)
	}
}

// FormatFromPath picks a format from a file extension, or fallback when the
// extension is not recognised.
func FormatFromPath(path string, fallback Format) Format {
	if format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return format
	}
	return fallback
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, records []domain.Record, format Format) error {
	if records == nil {
		records = []domain.Record{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported snapshot format %q", format)
	}
}

// Decode reads a snapshot from r. The document must be a list of
// {id, name, complete} objects with exactly those fields; anything else is
// reported as a *SchemaError.
func Decode(r io.Reader, format Format) ([]domain.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	doc, err := decodeGeneric(raw)
	if err != nil {
		return nil, &SchemaError{Message: err.Error()}
	}
	if err := validateShape(doc); err != nil {
		return nil, err
	}

	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &SchemaError{Message: err.Error()}
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// toJSON normalises the input to JSON so both formats share one validation
// path.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &SchemaError{Message: err.Error()}
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, &SchemaError{Message: err.Error()}
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
}

func decodeGeneric(raw []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after snapshot")
	}
	return doc, nil
}
