// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a catalogue
// document.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	case FormatTOML:
		return "TOML"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatFor returns the format implied by the
// filename's extension. Unrecognised extensions
// are treated as JSON, the conventional format.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Parse parses data into a generic value tree,
// suitable for Decode.
func Parse(format Format, data []byte) (any, error) {
	var tree any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err := dec.Decode(&tree)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s document: %w", format, err)
		}

		// Reject trailing content.
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("failed to parse %s document: unexpected data after top-level value", format)
		}
	case FormatYAML:
		err := yaml.Unmarshal(data, &tree)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s document: %w", format, err)
		}
	case FormatTOML:
		var table map[string]any
		err := toml.Unmarshal(data, &table)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s document: %w", format, err)
		}

		tree = table
	default:
		return nil, fmt.Errorf("unsupported document format %s", format)
	}

	return tree, nil
}
