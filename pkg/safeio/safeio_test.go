package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
		name    string
	}{
		{"content/docs", "content/docs", false, "plain relative path"},
		{"./content//docs/", "content/docs", false, "redundant separators cleaned"},
		{"../outside", "", true, "traversal rejected"},
		{"content/../../etc", "", true, "embedded traversal rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanUserPath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("CleanUserPath(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanUserPath(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("CleanUserPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadFileContained(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "inside.txt")
	if err := os.WriteFile(inside, []byte("ok"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outsideDir := t.TempDir()
	outside := filepath.Join(outsideDir, "outside.txt")
	if err := os.WriteFile(outside, []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := ReadFileContained(base, inside)
	if err != nil {
		t.Fatalf("contained read failed: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("read %q, want ok", data)
	}

	if _, err := ReadFileContained(base, outside); err == nil {
		t.Error("read outside base directory must fail")
	}
	if _, err := ReadFileContained(base, filepath.Join(base, "..", "escape.txt")); err == nil {
		t.Error("traversal via .. must fail")
	}
}

func TestWriteFilePreservePerms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	// New file gets the default mode
	if err := WriteFilePreservePerms(path, []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode()&0o777 != 0o644 {
		t.Errorf("mode = %o, want 644", st.Mode()&0o777)
	}

	// Existing mode is preserved on rewrite
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := WriteFilePreservePerms(path, []byte(`{"files":[]}`)); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	st, err = os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode()&0o777 != 0o600 {
		t.Errorf("mode = %o, want 600 preserved", st.Mode()&0o777)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"files":[]}` {
		t.Errorf("content = %s", data)
	}
}
