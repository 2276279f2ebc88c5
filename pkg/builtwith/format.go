package builtwith

import (
	"strings"

	"github.com/matzehuels/builtwith/pkg/errors"
)

// Format is the response encoding requested from the service. It becomes the
// extension of the request path (".../api.json").
type Format string

// Supported response formats.
const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatTXT  Format = "txt"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatXML, FormatJSON, FormatTXT}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatXML, FormatJSON, FormatTXT:
		return true
	}
	return false
}

func (f Format) String() string { return string(f) }

// ParseFormat converts s (case-insensitive, surrounding space ignored) into
// a Format. Unknown values fail with a CONFIGURATION error.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", invalidFormat(s)
	}
	return f, nil
}

func invalidFormat(s string) error {
	if s == "" {
		return errors.New(errors.ErrCodeConfiguration, "response format is required (one of xml, json, txt)")
	}
	return errors.New(errors.ErrCodeConfiguration, "unsupported response format %q (want one of xml, json, txt)", s)
}
