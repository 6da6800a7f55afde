package frontmatter

import (
	"reflect"
	"testing"
	"time"
)

func TestParseScalars(t *testing.T) {
	content := `---
title: Hello World
quoted: "Quoted Title"
single: 'Single Quoted'
published: TRUE
draft: false
count: 42
---
Body text
`
	fm := Parse(content)

	tests := []struct {
		key      string
		expected interface{}
		name     string
	}{
		{"title", "Hello World", "bare string"},
		{"quoted", "Quoted Title", "double-quoted string"},
		{"single", "Single Quoted", "single-quoted string"},
		{"published", true, "boolean case-insensitive"},
		{"draft", false, "boolean false"},
		{"count", "42", "numbers stay strings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fm[tt.key]
			if !ok {
				t.Fatalf("key %q missing", tt.key)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("key %q = %#v, want %#v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestParseInlineArray(t *testing.T) {
	fm := Parse("---\ntags: [go, \"quoted\", 'single', web ]\n---\n")
	got, ok := fm.List("tags")
	if !ok {
		t.Fatal("tags missing or not a list")
	}
	want := []string{"go", "quoted", "single", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestParseEmptyInlineArray(t *testing.T) {
	fm := Parse("---\ntags: []\n---\n")
	got, ok := fm.List("tags")
	if !ok || len(got) != 0 {
		t.Errorf("tags = %v (ok=%v), want empty list", got, ok)
	}
}

func TestParseContinuationList(t *testing.T) {
	content := `---
tags:
- alpha
- "beta"
- 'gamma'
---
`
	fm := Parse(content)
	got, ok := fm.List("tags")
	if !ok {
		t.Fatal("tags missing or not a list")
	}
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestContinuationIgnoredAfterScalar(t *testing.T) {
	// The most recent key is a scalar, so the items have nowhere to go.
	content := `---
tags:
title: Hello
- orphan
---
`
	fm := Parse(content)
	if tags, _ := fm.List("tags"); len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}
	if title, _ := fm.String("title"); title != "Hello" {
		t.Errorf("title = %q, want Hello", title)
	}
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	content := "---\n# a comment\n\ntitle: Kept\n---\n"
	fm := Parse(content)
	if title, _ := fm.String("title"); title != "Kept" {
		t.Errorf("title = %q, want Kept", title)
	}
	if len(fm) != 1 {
		t.Errorf("expected 1 key, got %d", len(fm))
	}
}

func TestParseNoFrontmatter(t *testing.T) {
	for _, content := range []string{
		"# Just a heading\n",
		"",
		"--- not a block\ntitle: x\n",
		"\n---\ntitle: late block\n---\n", // must start at offset 0
	} {
		if fm := Parse(content); len(fm) != 0 {
			t.Errorf("Parse(%q) = %v, want empty", content, fm)
		}
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	if fm := Parse("---\ntitle: dangling\n"); len(fm) != 0 {
		t.Errorf("unterminated block parsed: %v", fm)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		content  string
		expected string
		name     string
	}{
		{"# Hello\nbody", "Hello", "plain heading"},
		{"---\ntitle: X\n---\n# After Block\n", "After Block", "heading after frontmatter"},
		{"body\n## Sub\n# Top\n", "Top", "only level-one headings count"},
		{"no headings here\n", "", "no heading"},
		{"#missing space\n", "", "hash without space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Heading(tt.content); got != tt.expected {
				t.Errorf("Heading() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHeadingSkipsFrontmatterHash(t *testing.T) {
	// Comment lines inside the block must not be mistaken for headings.
	content := "---\n# comment\ntitle: X\n---\nno heading\n"
	if got := Heading(content); got != "" {
		t.Errorf("Heading() = %q, want empty", got)
	}
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		value  string
		layout string
	}{
		{"2024-01-15", "2006-01-02"},
		{"2024-01-15T10:30:00", "2006-01-02T15:04:05"},
		{"2024/01/15", "2006/01/02"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := ParseDate(tt.value)
			if got == nil {
				t.Fatalf("ParseDate(%q) = nil", tt.value)
			}
			want, err := time.ParseInLocation(tt.layout, tt.value, time.Local)
			if err != nil {
				t.Fatalf("reference parse failed: %v", err)
			}
			if *got != want.Unix() {
				t.Errorf("ParseDate(%q) = %d, want %d", tt.value, *got, want.Unix())
			}
		})
	}
}

func TestParseDateIntegerPassthrough(t *testing.T) {
	if got := ParseDate(1705312200); got == nil || *got != 1705312200 {
		t.Errorf("ParseDate(int) = %v, want 1705312200", got)
	}
	if got := ParseDate(int64(42)); got == nil || *got != 42 {
		t.Errorf("ParseDate(int64) = %v, want 42", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, value := range []interface{}{"yesterday", "15-01-2024", "1705312200", true, []string{"2024-01-15"}, nil} {
		if got := ParseDate(value); got != nil {
			t.Errorf("ParseDate(%#v) = %d, want nil", value, *got)
		}
	}
}
