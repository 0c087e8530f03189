package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ExportBaseName is the download name without extension.
const ExportBaseName = "dashboard_config"

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyImport       = errors.New("empty import file")
)

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FileName returns the attachment name for f.
func (f Format) FileName() string {
	return ExportBaseName + "." + string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatTOML:
		return "application/toml"
	default:
		return "application/json"
	}
}

// Encode renders state in format f. JSON is indented with two spaces.
func Encode(state *types.AppState, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return sonic.MarshalIndent(state, "", "  ")
	case FormatYAML:
		return yaml.Marshal(state)
	case FormatTOML:
		return toml.Marshal(state)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Export writes state to w in format f.
func Export(w io.Writer, state *types.AppState, f Format) error {
	data, err := Encode(state, f)
	if err != nil {
		return fmt.Errorf("encode %s export: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

// DecodeImport parses an uploaded state file into a generic value.
// JSON is detected by content; anything else is tried as TOML and then YAML
// so files produced by Export in any format can be read back.
func DecodeImport(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyImport
	}

	if mimetype.Detect(data).Is("application/json") {
		var doc any
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return doc, nil
	}

	var tomlDoc map[string]any
	if err := toml.Unmarshal(data, &tomlDoc); err == nil {
		return tomlDoc, nil
	}

	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return nil, fmt.Errorf("%w: not json, toml or yaml", ErrUnsupportedFormat)
	}
	return yamlDoc, nil
}
