package interfaces

import (
	"context"

	"github.com/goliatone/go-sitesource/pkg/attrs"
)

// Role classifies where an ingested file came from and how the rendering
// stage should treat it.
type Role string

const (
	RoleContent Role = "content"
	RoleLayout  Role = "layout"
	RoleInclude Role = "include"
)

// Attribute keys the ingestion pipeline reserves on every item it assembles.
const (
	AttrMTime      = "mtime"
	AttrFilename   = "filename"
	AttrExtension  = "extension"
	AttrTitle      = "title"
	AttrTitlePath  = "title_path"
	AttrDate       = "date"
	AttrCategories = "categories"
	AttrSlug       = "slug"
)

// Item is the ingested representation of one file. Items are built once per
// ingestion pass and handed to the rendering stage by reference; this
// subsystem never mutates them afterwards.
type Item struct {
	// ID is the slash-normalized path relative to the item's root. It keys
	// the owning collection.
	ID string
	// Role records which root produced the item.
	Role Role
	// Binary is true when the file's extension is outside the configured
	// text-extension set. Binary files are never read into memory.
	Binary bool
	// Raw holds the original file bytes. Empty for binary items.
	Raw []byte
	// Body is the effective content: Raw with any consumed frontmatter block
	// stripped. Equals Raw when nothing was stripped.
	Body []byte
	// RelativePath mirrors ID and is always set.
	RelativePath string
	// SourcePath is the absolute filesystem path, set only for binary items
	// so a downstream stage can stream the bytes directly.
	SourcePath string
	// Attributes carries the ordered metadata map: parsed sidecar or
	// frontmatter attributes plus the derived reserved keys.
	Attributes *attrs.Map
}

// Collection maps item ids to items. Inserting an id that already exists
// replaces the previous item: last write wins. The policy is deliberate so
// include paths that overlap the default scan re-register files
// predictably instead of depending on walk order.
type Collection map[string]*Item

// Put inserts item under its ID and reports whether an existing item was
// replaced.
func (c Collection) Put(item *Item) bool {
	if item == nil {
		return false
	}
	_, replaced := c[item.ID]
	c[item.ID] = item
	return replaced
}

// IDs returns the collection's keys in unspecified order.
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

// SourceService runs ingestion passes over a configured source tree. The
// contract is configure-then-process-then-read: accessor results are only
// defined after Process returns without error.
type SourceService interface {
	Process(ctx context.Context) error
	Items() Collection
	Layouts() Collection
	Includes() Collection
}
