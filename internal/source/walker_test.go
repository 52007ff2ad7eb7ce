package source

import (
	"context"
	"reflect"
	"testing"
	"testing/fstest"
)

func newTestWalker(tb testing.TB, fsys fstest.MapFS, include, exclude []string) *walker {
	tb.Helper()

	excludes, err := compileExcludes(exclude)
	if err != nil {
		tb.Fatalf("compileExcludes: %v", err)
	}
	return &walker{fsys: fsys, includes: include, excludes: excludes}
}

func TestWalkRootSortedRelativePaths(t *testing.T) {
	fsys := fstest.MapFS{
		"content/zz.md":        fixtureFile("z"),
		"content/a/deep.md":    fixtureFile("d"),
		"content/about.md":     fixtureFile("a"),
		"layouts/default.html": fixtureFile("l"),
	}

	w := newTestWalker(t, fsys, nil, nil)
	files, err := w.walkRoot(context.Background(), "content", walkOptions{})
	if err != nil {
		t.Fatalf("walkRoot: %v", err)
	}

	want := []string{"a/deep.md", "about.md", "zz.md"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files %v, want %v", files, want)
	}
}

func TestWalkRootMissingRoot(t *testing.T) {
	w := newTestWalker(t, fstest.MapFS{"content/a.md": fixtureFile("a")}, nil, nil)

	files, err := w.walkRoot(context.Background(), "layouts", walkOptions{})
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("files: %v", files)
	}
}

func TestWalkRootSkipsSidecars(t *testing.T) {
	fsys := fstest.MapFS{
		"content/a.md":      fixtureFile("a"),
		"content/a.md.meta": fixtureFile("title: a"),
	}

	w := newTestWalker(t, fsys, nil, nil)
	files, err := w.walkRoot(context.Background(), "content", walkOptions{skipSidecars: true})
	if err != nil {
		t.Fatalf("walkRoot: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"a.md"}) {
		t.Fatalf("files: %v", files)
	}

	// Roots that do not interpret sidecars keep them.
	files, err = w.walkRoot(context.Background(), "content", walkOptions{})
	if err != nil {
		t.Fatalf("walkRoot: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files: %v", files)
	}
}

func TestWalkRootExcludePatterns(t *testing.T) {
	fsys := fstest.MapFS{
		"content/about.md":    fixtureFile("a"),
		"content/scratch.tmp": fixtureFile("t"),
		"content/drafts/a.md": fixtureFile("d"),
		"content/drafts/b.md": fixtureFile("d"),
	}

	w := newTestWalker(t, fsys, nil, []string{"*.tmp", "drafts"})
	files, err := w.walkRoot(context.Background(), "content", walkOptions{})
	if err != nil {
		t.Fatalf("walkRoot: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"about.md"}) {
		t.Fatalf("files: %v", files)
	}
}

func TestWalkRootIncludeMergesFilesAndDirs(t *testing.T) {
	fsys := fstest.MapFS{
		"content/about.md":      fixtureFile("a"),
		"content/extra/one.md":  fixtureFile("1"),
		"content/extra/two.md":  fixtureFile("2"),
		"content/single.txt":    fixtureFile("s"),
		"content/unrelated.bin": fixtureFile("u"),
	}

	w := newTestWalker(t, fsys, []string{"extra", "single.txt", "does-not-exist"}, []string{"extra", "single.txt", "unrelated.bin"})
	files, err := w.walkRoot(context.Background(), "content", walkOptions{})
	if err != nil {
		t.Fatalf("walkRoot: %v", err)
	}

	// Include entries bypass the exclusions; unlisted excluded files stay out.
	want := []string{"about.md", "extra/one.md", "extra/two.md", "single.txt"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files %v, want %v", files, want)
	}
}

func TestWalkRootIncludeDeduplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"content/about.md": fixtureFile("a"),
	}

	w := newTestWalker(t, fsys, []string{"about.md", "about.md"}, nil)
	files, err := w.walkRoot(context.Background(), "content", walkOptions{})
	if err != nil {
		t.Fatalf("walkRoot: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"about.md"}) {
		t.Fatalf("files: %v", files)
	}
}

func TestWalkRootCancelledContext(t *testing.T) {
	fsys := fstest.MapFS{
		"content/about.md": fixtureFile("a"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := newTestWalker(t, fsys, nil, nil)
	if _, err := w.walkRoot(ctx, "content", walkOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestCompileExcludesRejectsBadPattern(t *testing.T) {
	if _, err := compileExcludes([]string{"[unclosed"}); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestExcludeMatcherDirectoryPrefix(t *testing.T) {
	matchers, err := compileExcludes([]string{"drafts"})
	if err != nil {
		t.Fatalf("compileExcludes: %v", err)
	}

	m := matchers[0]
	if !m.matches("drafts") || !m.matches("drafts/a.md") || !m.matches("drafts/deep/b.md") {
		t.Fatal("bare directory entry should exclude the subtree")
	}
	if m.matches("drafts-notes/a.md") {
		t.Fatal("sibling directory with the pattern as prefix should not match")
	}
}
