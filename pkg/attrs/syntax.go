package attrs

import (
	"errors"
	"fmt"
	"strings"
)

// Syntax selects the structured document syntax used for sidecar files and
// frontmatter blocks.
type Syntax string

const (
	SyntaxYAML Syntax = "yaml"
	SyntaxJSON Syntax = "json"
)

// ErrSyntaxUnknown indicates an unsupported document syntax identifier.
var ErrSyntaxUnknown = errors.New("attrs: unknown document syntax")

// ParseSyntax normalizes a syntax identifier, defaulting to YAML when empty.
func ParseSyntax(value string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return SyntaxYAML, nil
	case string(SyntaxYAML):
		return SyntaxYAML, nil
	case string(SyntaxJSON):
		return SyntaxJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrSyntaxUnknown, value)
	}
}

// Valid reports whether the syntax is one of the supported identifiers.
func (s Syntax) Valid() bool {
	return s == SyntaxYAML || s == SyntaxJSON
}

// Decode parses a complete document in the receiver syntax into an ordered
// attribute map. An empty document decodes to an empty map.
func (s Syntax) Decode(data []byte) (*Map, error) {
	switch s {
	case SyntaxJSON:
		return DecodeJSON(data)
	case SyntaxYAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrSyntaxUnknown, string(s))
	}
}
