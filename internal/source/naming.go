package source

import (
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitesource/pkg/attrs"
	"github.com/goliatone/go-sitesource/pkg/interfaces"
)

// datePrefixPattern matches date-prefixed base names such as
// "2020-05-01-hello-world". Anchoring at both ends matters: an end-only
// anchor would also capture names that merely contain a date-like substring.
var datePrefixPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

// applyNamingConvention derives title_path, title, date and slug from the
// base filename. Explicitly parsed attributes always win; derivation only
// fills gaps.
func applyNamingConvention(doc *attrs.Map, baseName string) {
	base := strings.TrimSuffix(baseName, path.Ext(baseName))

	slugSource := base
	if match := datePrefixPattern.FindStringSubmatch(base); match != nil {
		remainder := match[4]
		slugSource = remainder

		doc.SetIfAbsent(interfaces.AttrTitlePath, attrs.String(remainder))
		doc.SetIfAbsent(interfaces.AttrTitle, attrs.String(strings.ReplaceAll(remainder, "-", " ")))
		doc.SetIfAbsent(interfaces.AttrDate, attrs.String(match[1]+"-"+match[2]+"-"+match[3]))
	}

	if normalized, err := slug.Normalize(slugSource); err == nil && normalized != "" {
		doc.SetIfAbsent(interfaces.AttrSlug, attrs.String(normalized))
	}
}

const postsPrefix = "posts"

// deriveCategories assigns the ordered category segments for content items
// located under the posts subtree. Items directly under posts/ get an empty
// list; explicit categories are left untouched.
func deriveCategories(doc *attrs.Map, rel string) {
	dir := path.Dir(rel)

	switch {
	case dir == postsPrefix:
		doc.SetIfAbsent(interfaces.AttrCategories, attrs.Sequence())
	case strings.HasPrefix(dir, postsPrefix+"/"):
		remainder := strings.TrimPrefix(dir, postsPrefix+"/")
		segments := []string{}
		for _, segment := range strings.Split(remainder, "/") {
			if segment == "" {
				continue
			}
			segments = append(segments, segment)
		}
		doc.SetIfAbsent(interfaces.AttrCategories, attrs.Strings(segments...))
	}
}
