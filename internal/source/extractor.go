package source

import (
	"errors"
	"io/fs"

	"github.com/goliatone/go-sitesource/internal/schema"
	"github.com/goliatone/go-sitesource/pkg/attrs"
)

// extractor resolves the attribute document for a text file. Sidecar
// metadata takes precedence over an embedded frontmatter block; the two
// sources are mutually exclusive.
type extractor struct {
	fsys      fs.FS
	syntax    attrs.Syntax
	validator *schema.Validator
}

// extract returns the attribute document and the effective body for the file
// at rel (a path inside the walker's filesystem) whose raw bytes were
// already read.
//
// When a sidecar exists its whole contents become the attributes and the raw
// bytes pass through verbatim: a frontmatter block inside the main file, if
// any, stays embedded and is not stripped. Without a sidecar the extractor
// parses and strips a leading frontmatter block; absent that too, the
// attributes are empty and the body equals the raw bytes.
func (e *extractor) extract(rel string, raw []byte, allowSidecar bool) (*attrs.Map, []byte, error) {
	if allowSidecar {
		sidecar := rel + SidecarSuffix
		data, err := fs.ReadFile(e.fsys, sidecar)
		switch {
		case err == nil:
			doc, decodeErr := e.syntax.Decode(data)
			if decodeErr != nil {
				return nil, nil, newAttributeParseError(sidecar, decodeErr)
			}
			if validateErr := e.validator.Validate(doc); validateErr != nil {
				return nil, nil, newAttributeParseError(sidecar, validateErr)
			}
			return doc, raw, nil
		case errors.Is(err, fs.ErrNotExist):
			// Fall through to frontmatter.
		default:
			return nil, nil, newFileAccessError("read sidecar", sidecar, err)
		}
	}

	doc, body, err := attrs.ExtractFrontMatter(e.syntax, raw)
	if err != nil {
		return nil, nil, newAttributeParseError(rel, err)
	}
	if err := e.validator.Validate(doc); err != nil {
		return nil, nil, newAttributeParseError(rel, err)
	}
	return doc, body, nil
}
