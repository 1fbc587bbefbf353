package sidebar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a sidebar document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// FormatFromPath derives the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %q: no extension", path)
	}

	return ParseFormat(ext)
}

// Decode parses a sidebar document. Unknown fields are rejected.
func Decode(data []byte, format Format) (*Sidebar, error) {
	var s Sidebar

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode JSON sidebar: %w", err)
		}

		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.New("decode JSON sidebar: unexpected data after document")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&s); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("decode YAML sidebar: empty document")
			}
			return nil, fmt.Errorf("decode YAML sidebar: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if s.Groups == nil {
		s.Groups = make(map[string][]Item)
	}

	return &s, nil
}

// DocumentChecker validates a raw sidebar document before it is decoded.
type DocumentChecker interface {
	ValidateDocument(data []byte, format Format) error
}

type loadOptions struct {
	checker DocumentChecker
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithDocumentChecker runs c on the raw document before it is decoded.
func WithDocumentChecker(c DocumentChecker) LoadOption {
	return func(o *loadOptions) { o.checker = c }
}

// Load reads and decodes the sidebar document at path.
func Load(path string, opts ...LoadOption) (*Sidebar, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidebar %s: %w", path, err)
	}

	if o.checker != nil {
		if err := o.checker.ValidateDocument(data, format); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return s, nil
}

// Encode writes the sidebar in the given format.
func Encode(w io.Writer, s *Sidebar, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode JSON sidebar: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode YAML sidebar: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("flush YAML sidebar: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	return nil
}
