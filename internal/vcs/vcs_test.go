package vcs

import (
	"testing"
)

func TestNullSource(t *testing.T) {
	var src Source = Null{}
	if ts, ok := src.LastModified("anything.md"); ok || ts != 0 {
		t.Errorf("Null.LastModified = (%d, %v), want (0, false)", ts, ok)
	}
}

func TestGitSourceOutsideRepository(t *testing.T) {
	// A bare temp directory has no enclosing repository; every lookup
	// must miss instead of failing.
	src := NewGitSource(t.TempDir())
	if ts, ok := src.LastModified("readme.md"); ok {
		t.Errorf("LastModified in non-repo = (%d, true), want miss", ts)
	}
}

func TestGitSourceMissingFile(t *testing.T) {
	src := NewGitSource(t.TempDir())
	if _, ok := src.LastModified("does/not/exist.md"); ok {
		t.Error("expected miss for nonexistent path")
	}
}
