package manifest

import (
	"encoding/json"
	"path/filepath"

	"github.com/contentkit/manifestgen/pkg/config"
	"github.com/contentkit/manifestgen/pkg/logger"
	"github.com/contentkit/manifestgen/pkg/safeio"
)

// sidecarFields is a loosely-typed JSON object. Individual fields are
// decoded on demand so one malformed field never discards the rest.
type sidecarFields map[string]json.RawMessage

func (f sidecarFields) str(key string) (string, bool) {
	raw, ok := f[key]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (f sidecarFields) strList(key string) ([]string, bool) {
	raw, ok := f[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return nil, false
	}
	return list, true
}

// nullableStr returns a pointer for string-valued fields and nil for
// absent, null, or non-string values.
func (f sidecarFields) nullableStr(key string) *string {
	if s, ok := f.str(key); ok {
		return &s
	}
	return nil
}

// loadSidecar reads a JSON sidecar contained within root. Missing files,
// unreadable files, malformed JSON, and empty objects all report absent.
func loadSidecar(root, path string) (sidecarFields, bool) {
	data, err := safeio.ReadFileContained(root, path)
	if err != nil {
		return nil, false
	}
	var fields sidecarFields
	if err := json.Unmarshal(data, &fields); err != nil {
		logger.Debug("Ignoring malformed sidecar", logger.String("path", path), logger.Err(err))
		return nil, false
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// loadKeys loads the encryption sidecar for the file at path (<file>.keys).
func loadKeys(root, path string) (sidecarFields, bool) {
	return loadSidecar(root, path+config.SidecarSuffix)
}

// loadDescriptor loads a directory's metadata descriptor (.meta.json).
func loadDescriptor(root, dir string) (sidecarFields, bool) {
	return loadSidecar(root, filepath.Join(dir, config.DescriptorName))
}
