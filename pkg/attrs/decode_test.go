package attrs

import (
	"reflect"
	"testing"
)

func TestDecodeYAMLKeepsOrderAndTypes(t *testing.T) {
	doc := []byte("zulu: last\ntitle: hello\ncount: 3\nratio: 0.5\ndraft: false\nempty:\ntags:\n  - a\n  - b\nnested:\n  inner: 1\n")

	m, err := DecodeYAML(doc)
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}

	wantKeys := []string{"zulu", "title", "count", "ratio", "draft", "empty", "tags", "nested"}
	if got := m.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("unexpected key order: %v", got)
	}

	if v, _ := m.Get("count"); v.Kind() != KindInt || v.Int() != 3 {
		t.Fatalf("count: %v", v)
	}
	if v, _ := m.Get("ratio"); v.Kind() != KindFloat || v.Float() != 0.5 {
		t.Fatalf("ratio: %v", v)
	}
	if v, _ := m.Get("draft"); v.Kind() != KindBool || v.Bool() {
		t.Fatalf("draft: %v", v)
	}
	if v, _ := m.Get("empty"); !v.IsNil() {
		t.Fatalf("empty should be nil, got %v", v)
	}
	if v, _ := m.Get("tags"); v.Kind() != KindSequence || len(v.Sequence()) != 2 {
		t.Fatalf("tags: %v", v)
	}
	nested, _ := m.Get("nested")
	if nested.Kind() != KindMap {
		t.Fatalf("nested: %v", nested)
	}
	if inner, _ := nested.Map().Get("inner"); inner.Int() != 1 {
		t.Fatalf("nested.inner: %v", inner)
	}
}

func TestDecodeYAMLEmptyDocument(t *testing.T) {
	m, err := DecodeYAML(nil)
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %v", m.Keys())
	}
}

func TestDecodeYAMLRejectsNonMapping(t *testing.T) {
	if _, err := DecodeYAML([]byte("- one\n- two\n")); err == nil {
		t.Fatal("expected error for sequence root")
	}
	if _, err := DecodeYAML([]byte("title: [unclosed\n")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestDecodeJSONKeepsOrderAndTypes(t *testing.T) {
	doc := []byte(`{"zulu": "last", "count": 3, "ratio": 0.5, "draft": false, "tags": ["a", "b"], "nested": {"inner": 1}, "none": null}`)

	m, err := DecodeJSON(doc)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	wantKeys := []string{"zulu", "count", "ratio", "draft", "tags", "nested", "none"}
	if got := m.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("unexpected key order: %v", got)
	}
	if v, _ := m.Get("count"); v.Kind() != KindInt || v.Int() != 3 {
		t.Fatalf("count: %v", v)
	}
	if v, _ := m.Get("ratio"); v.Kind() != KindFloat || v.Float() != 0.5 {
		t.Fatalf("ratio: %v", v)
	}
	if v, _ := m.Get("none"); !v.IsNil() {
		t.Fatalf("none should be nil, got %v", v)
	}
}

func TestDecodeJSONRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"array root":    `[1, 2]`,
		"truncated":     `{"title": "x"`,
		"trailing data": `{"title": "x"} {"more": 1}`,
		"bare scalar":   `42`,
	}
	for name, doc := range cases {
		if _, err := DecodeJSON([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecodeJSONBlankDocument(t *testing.T) {
	m, err := DecodeJSON([]byte("  \n"))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %v", m.Keys())
	}
}

func TestParseSyntax(t *testing.T) {
	if s, err := ParseSyntax(""); err != nil || s != SyntaxYAML {
		t.Fatalf("default syntax: %v %v", s, err)
	}
	if s, err := ParseSyntax("JSON"); err != nil || s != SyntaxJSON {
		t.Fatalf("json syntax: %v %v", s, err)
	}
	if _, err := ParseSyntax("toml"); err == nil {
		t.Fatal("expected error for toml")
	}
}
