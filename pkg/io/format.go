package io

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/matzehuels/invoicer/pkg/errors"
)

// Format is an invoice encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatYAML, FormatTOML, FormatJSON}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported invoice file %q (use .yaml, .toml or .json)", filepath.Base(path))
	}
}

// FormatFromContentType picks the encoding from an HTTP Content-Type.
// Unknown or missing types default to YAML.
func FormatFromContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatYAML
	}
	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return FormatJSON
	case strings.HasSuffix(mt, "/toml"):
		return FormatTOML
	default:
		return FormatYAML
	}
}
