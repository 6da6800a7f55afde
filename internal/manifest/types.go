package manifest

import (
	"bytes"
	"encoding/json"
	"io"
)

// FileEntry describes one content file. Field order fixes the JSON layout
// consumed by the site.
type FileEntry struct {
	// Path is relative to the content root, slash-separated.
	Path  string `json:"path"`
	Title string `json:"title"`
	// Size is the file length in bytes.
	Size int64 `json:"size"`
	// Modified is a Unix timestamp; null when no source could supply one.
	Modified *int64   `json:"modified"`
	Tags     []string `json:"tags"`
	// Encryption is present only for files with a key sidecar carrying
	// encryption material.
	Encryption *Encryption `json:"encryption,omitempty"`
}

// Encryption carries the sidecar's encryption descriptor. WrappedKeys is
// opaque to the generator and passed through verbatim.
type Encryption struct {
	Algorithm   string          `json:"algorithm,omitempty"`
	WrappedKeys json.RawMessage `json:"wrapped_keys,omitempty"`
}

// DirectoryEntry describes one directory that carries a descriptor file.
// The root directory uses the empty path.
type DirectoryEntry struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
	Thumbnail   *string  `json:"thumbnail"`
}

// Manifest is the aggregated description of a content tree.
type Manifest struct {
	Files       []FileEntry      `json:"files"`
	Directories []DirectoryEntry `json:"directories"`
}

// Encode writes the manifest as pretty-printed JSON. HTML escaping is
// disabled so titles and paths appear literally.
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Render returns the manifest bytes exactly as Encode would write them.
func (m *Manifest) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
