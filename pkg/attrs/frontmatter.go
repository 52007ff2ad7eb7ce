package attrs

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Delimiter fences a frontmatter block at the very start of a content file.
// Both supported syntaxes share the same fence; the configured syntax only
// changes how the block's body is decoded.
const Delimiter = "---"

// ExtractFrontMatter looks for a delimited metadata block at the start of
// source. When a block is present it is decoded in the given syntax and the
// returned body has the block and both fences stripped. When no block exists
// the attribute map is empty and the body equals source.
func ExtractFrontMatter(syntax Syntax, source []byte) (*Map, []byte, error) {
	var holder documentHolder

	format := frontmatter.NewFormat(Delimiter, Delimiter, func(data []byte, v any) error {
		target, ok := v.(*documentHolder)
		if !ok {
			return fmt.Errorf("attrs: frontmatter target %T", v)
		}
		doc, err := syntax.Decode(data)
		if err != nil {
			return err
		}
		target.doc = doc
		return nil
	})

	body, err := frontmatter.Parse(bytes.NewReader(source), &holder, format)
	if err != nil {
		return nil, nil, fmt.Errorf("attrs: parse frontmatter: %w", err)
	}

	if holder.doc == nil {
		// No block detected: the parser hands back the input untouched.
		return NewMap(), source, nil
	}
	return holder.doc, body, nil
}

type documentHolder struct {
	doc *Map
}
