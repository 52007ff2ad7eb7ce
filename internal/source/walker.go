package source

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// SidecarSuffix names the adjacent metadata file convention: a content file
// at relative path P reads its attributes from P + SidecarSuffix when that
// file exists.
const SidecarSuffix = ".meta"

// excludeMatcher drops enumerated files that match a configured pattern. A
// bare directory entry excludes its whole subtree.
type excludeMatcher struct {
	pattern string
	matcher glob.Glob
}

func compileExcludes(patterns []string) ([]excludeMatcher, error) {
	matchers := make([]excludeMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, excludeMatcher{pattern: pattern, matcher: compiled})
	}
	return matchers, nil
}

func (m excludeMatcher) matches(rel string) bool {
	if m.matcher.Match(rel) {
		return true
	}
	if rel == m.pattern {
		return true
	}
	return strings.HasPrefix(rel, m.pattern+"/")
}

// walker enumerates candidate files under the logical roots of a source tree.
type walker struct {
	fsys     fs.FS
	includes []string
	excludes []excludeMatcher
}

type walkOptions struct {
	// skipSidecars drops files carrying the sidecar suffix; only the content
	// root interprets sidecar metadata, so only it hides them.
	skipSidecars bool
}

// walkRoot returns the sorted root-relative slash paths of every regular
// file under root. Exclude patterns prune the default scan; include entries
// are merged afterwards and bypass the exclusions, so a listed path is
// force-included. A missing root yields no files and no error.
func (w *walker) walkRoot(ctx context.Context, root string, opts walkOptions) ([]string, error) {
	info, err := fs.Stat(w.fsys, root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, newFileAccessError("stat", root, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	seen := map[string]struct{}{}
	if err := w.collect(ctx, root, root, opts, true, seen); err != nil {
		return nil, err
	}

	for _, entry := range w.includes {
		if err := w.mergeInclude(ctx, root, entry, opts, seen); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(seen))
	for rel := range seen {
		files = append(files, rel)
	}
	sort.Strings(files)
	return files, nil
}

// collect walks dir (a path inside root) and records root-relative files.
func (w *walker) collect(ctx context.Context, root, dir string, opts walkOptions, applyExcludes bool, seen map[string]struct{}) error {
	return fs.WalkDir(w.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return newFileAccessError("walk", p, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if opts.skipSidecars && strings.HasSuffix(p, SidecarSuffix) {
			return nil
		}
		rel := relativeTo(root, p)
		if applyExcludes && w.excluded(rel) {
			return nil
		}
		seen[rel] = struct{}{}
		return nil
	})
}

// mergeInclude adds an include entry to the scan: directories are walked,
// plain files are added individually, anything else is skipped silently.
// Included paths are exempt from the exclude patterns.
func (w *walker) mergeInclude(ctx context.Context, root, entry string, opts walkOptions, seen map[string]struct{}) error {
	entry = strings.Trim(path.Clean(strings.TrimSpace(entry)), "/")
	if entry == "" || entry == "." {
		return nil
	}

	full := path.Join(root, entry)
	info, err := fs.Stat(w.fsys, full)
	if err != nil {
		// Entries that resolve to nothing under this root are not an error.
		return nil
	}

	switch {
	case info.IsDir():
		return w.collect(ctx, root, full, opts, false, seen)
	case info.Mode().IsRegular():
		if opts.skipSidecars && strings.HasSuffix(full, SidecarSuffix) {
			return nil
		}
		seen[relativeTo(root, full)] = struct{}{}
		return nil
	default:
		return nil
	}
}

func (w *walker) excluded(rel string) bool {
	for _, matcher := range w.excludes {
		if matcher.matches(rel) {
			return true
		}
	}
	return false
}

func relativeTo(root, p string) string {
	if p == root {
		return path.Base(p)
	}
	return strings.TrimPrefix(p, root+"/")
}
