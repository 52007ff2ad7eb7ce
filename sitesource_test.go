package sitesource

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

func fixtureTree() fstest.MapFS {
	mtime := time.Date(2021, 3, 14, 9, 0, 0, 0, time.UTC)
	file := func(data string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(data), ModTime: mtime}
	}
	return fstest.MapFS{
		"content/index.md":                  file("---\ntitle: Home\n---\n# home\n"),
		"content/posts/2021-03-14-pi.md":    file("pi day\n"),
		"content/assets/chart.png":          file("\x89PNG"),
		"layouts/default.html":              file("<html>{{ content }}</html>\n"),
		"includes/nav.html":                 file("<nav/>\n"),
		"content/posts/tech/2021-01-01.txt": file("note\n"),
	}
}

func fixtureConfig() Config {
	cfg := DefaultConfig()
	cfg.SourceRoot = "site"
	cfg.TextExtensions = []string{"md", "html", "txt"}
	return cfg
}

func TestModuleEndToEnd(t *testing.T) {
	module, err := New(fixtureConfig(), WithFS(fixtureTree()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	svc := module.Source()
	if err := svc.Process(context.Background()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if got := len(svc.Items()); got != 4 {
		t.Fatalf("content items: %d, ids %v", got, svc.Items().IDs())
	}
	if got := len(svc.Layouts()); got != 1 {
		t.Fatalf("layouts: %d", got)
	}
	if got := len(svc.Includes()); got != 1 {
		t.Fatalf("includes: %d", got)
	}

	index := svc.Items()["index.md"]
	if index == nil {
		t.Fatal("index.md missing")
	}
	if v, _ := index.Attributes.Get("title"); v.Str() != "Home" {
		t.Fatalf("title: %v", v)
	}

	post := svc.Items()["posts/2021-03-14-pi.md"]
	if post == nil {
		t.Fatal("post missing")
	}
	if v, _ := post.Attributes.Get("date"); v.Str() != "2021-03-14" {
		t.Fatalf("derived date: %v", v)
	}

	chart := svc.Items()["assets/chart.png"]
	if chart == nil || !chart.Binary || chart.SourcePath == "" {
		t.Fatalf("binary asset: %+v", chart)
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	cfg := fixtureConfig()
	cfg.TextExtensions = nil

	_, err := New(cfg, WithFS(fixtureTree()))
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestModuleSurfacesParseErrors(t *testing.T) {
	tree := fixtureTree()
	tree["content/broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n")}

	module, err := New(fixtureConfig(), WithFS(tree))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := module.Source().Process(context.Background()); !IsAttributeParseError(err) {
		t.Fatalf("expected attribute parse error, got %v", err)
	}
}
