// Package input decodes specification and rate-table documents. JSON,
// YAML and HJSON all pass through the same JSON-shaped tree, so struct
// json tags are the single source of field names.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"poolcost/internal/errors"
)

// Format is a document encoding
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHJSON Format = "hjson"
)

// ParseFormat accepts a format name or file extension
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hjson":
		return FormatHJSON, nil
	}
	return "", errors.Newf(errors.TypeInput, "unsupported document format %q", s)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Tree decodes a document into a JSON-shaped tree
func Tree(data []byte, format Format) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Parsing("decode json", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Parsing("decode yaml", err)
		}
	case FormatHJSON:
		if err := hjson.Unmarshal(data, &raw); err != nil {
			return nil, errors.Parsing("decode hjson", err)
		}
	default:
		return nil, errors.Newf(errors.TypeInput, "unsupported document format %q", format)
	}

	if raw == nil {
		return map[string]any{}, nil
	}
	tree, ok := Normalize(raw).(map[string]any)
	if !ok {
		return nil, errors.Newf(errors.TypeParsing, "%s document must be an object, got %T", format, raw)
	}
	return tree, nil
}

// Normalize converts yaml.v2 map[interface{}]interface{} nodes into
// map[string]any so the tree can be merged and re-encoded as JSON.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	}
	return v
}

// FromTree decodes a tree into out through its json tags
func FromTree(tree map[string]any, out any) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return errors.Parsing("encode tree", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Parsing("decode tree", err)
	}
	return nil
}

// ToTree encodes v into a tree through its json tags
func ToTree(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Internal("encode value", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Internal("decode value", err)
	}
	return tree, nil
}

// Decode decodes a document straight into out
func Decode(data []byte, format Format, out any) error {
	tree, err := Tree(data, format)
	if err != nil {
		return err
	}
	return FromTree(tree, out)
}

// ReadFile decodes the file at path, picking the format by extension
func ReadFile(path string, out any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInput, err, "read %s", path)
	}
	if err := Decode(data, format, out); err != nil {
		return errors.Wrapf(errors.TypeParsing, err, "parse %s", path)
	}
	return nil
}

// Encode renders v in the given format
func Encode(v any, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(v, "", "  ")
	}
	tree, err := ToTree(v)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(tree)
	case FormatHJSON:
		return hjson.Marshal(tree)
	}
	return nil, errors.Newf(errors.TypeInput, "unsupported document format %q", format)
}
