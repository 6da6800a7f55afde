// Package manifest builds the content manifest: it walks a content tree,
// merges per-file and per-directory metadata from sidecars, frontmatter,
// and version-control history, and serializes the result.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/contentkit/manifestgen/internal/frontmatter"
	"github.com/contentkit/manifestgen/internal/vcs"
	"github.com/contentkit/manifestgen/pkg/config"
	"github.com/contentkit/manifestgen/pkg/ignore"
	"github.com/contentkit/manifestgen/pkg/logger"
	"github.com/contentkit/manifestgen/pkg/safeio"
)

// Scanner walks a content root and produces a Manifest. Each file and
// directory is processed independently; all metadata failures are absorbed
// locally and treated as "absent".
type Scanner struct {
	cfg     *config.Config
	mods    vcs.Source
	ignorer *ignore.Matcher
	exts    map[string]struct{}
}

// NewScanner builds a scanner over cfg.Root with mods supplying
// version-control timestamps. The ignore matcher layers .gitignore and
// .manifestignore patterns found in the content root.
func NewScanner(cfg *config.Config, mods vcs.Source) *Scanner {
	s := &Scanner{
		cfg:  cfg,
		mods: mods,
		exts: cfg.ExtensionSet(),
	}
	if matcher, err := ignore.NewMatcher(cfg.Root); err == nil {
		s.ignorer = matcher
	}
	return s
}

// Scan walks the content root and returns the aggregated manifest. The only
// hard failure is a missing root; everything below it is best-effort.
func (s *Scanner) Scan() (*Manifest, error) {
	root := s.cfg.Root
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("content directory %q not found", root)
	}

	m := &Manifest{
		Files:       []FileEntry{},
		Directories: []DirectoryEntry{},
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("Skipping unreadable path", logger.String("path", path))
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			// Root descriptor is handled after the walk so it lands last,
			// after every subdirectory entry.
			return nil
		}

		if d.IsDir() {
			if s.excludedDir(rel) {
				return filepath.SkipDir
			}
			if s.ignorer != nil && s.ignorer.IsIgnoredDir(rel) {
				return filepath.SkipDir
			}
			if entry, ok := s.directoryEntry(rel, path); ok {
				m.Directories = append(m.Directories, entry)
			}
			return nil
		}

		if !s.eligible(rel, d.Name()) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		m.Files = append(m.Files, s.fileEntry(rel, path, info.Size()))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if entry, ok := s.directoryEntry("", root); ok {
		m.Directories = append(m.Directories, entry)
	}

	return m, nil
}

// eligible applies the skip rules: sidecars and descriptors are never
// entries, the extension must be recognized, hidden path segments exclude
// the file, and configured globs or ignore patterns drop it.
func (s *Scanner) eligible(rel, name string) bool {
	if name == config.DescriptorName {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == config.SidecarSuffix {
		return false
	}
	if _, ok := s.exts[ext]; !ok {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	if s.excluded(rel) {
		return false
	}
	if s.ignorer != nil && s.ignorer.IsIgnored(rel) {
		return false
	}
	return true
}

// excluded reports whether rel matches a configured exclude glob.
func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.cfg.Exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// excludedDir reports whether the exclude globs cover a directory. A pattern
// excluding a whole subtree ("drafts/**") drops the directory itself too, so
// an excluded tree contributes no entries even when it carries a descriptor.
func (s *Scanner) excludedDir(rel string) bool {
	if s.excluded(rel) {
		return true
	}
	for _, pattern := range s.cfg.Exclude {
		prefix, found := strings.CutSuffix(pattern, "/**")
		if !found {
			continue
		}
		if matched, err := doublestar.Match(prefix, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// fileEntry builds the manifest entry for one file. A key sidecar is
// authoritative and short-circuits markdown parsing entirely; encrypted
// content is opaque.
func (s *Scanner) fileEntry(rel, path string, size int64) FileEntry {
	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	entry := FileEntry{
		Path:  rel,
		Title: stem,
		Size:  size,
		Tags:  []string{},
	}
	if ts, ok := s.mods.LastModified(rel); ok {
		entry.Modified = &ts
	}

	if keys, ok := loadKeys(s.cfg.Root, path); ok {
		applyKeys(&entry, keys)
		return entry
	}

	if strings.ToLower(filepath.Ext(rel)) == ".md" {
		s.applyMarkdown(&entry, path)
	}

	return entry
}

// applyKeys merges metadata from an encryption sidecar into the entry.
func applyKeys(entry *FileEntry, keys sidecarFields) {
	if title, ok := keys.str("title"); ok {
		entry.Title = title
	}
	if tags, ok := keys.strList("tags"); ok {
		entry.Tags = tags
	}

	var enc Encryption
	if algorithm, ok := keys.str("algorithm"); ok {
		enc.Algorithm = algorithm
	}
	if raw, ok := keys["wrapped_keys"]; ok {
		enc.WrappedKeys = raw
	}
	if enc.Algorithm != "" || enc.WrappedKeys != nil {
		entry.Encryption = &enc
	}
}

// applyMarkdown merges frontmatter and heading metadata into the entry.
// Title precedence: frontmatter title > first heading > filename stem.
// An unreadable file keeps the defaults.
func (s *Scanner) applyMarkdown(entry *FileEntry, path string) {
	data, err := safeio.ReadFileContained(s.cfg.Root, path)
	if err != nil {
		logger.Debug("Skipping unreadable markdown", logger.String("path", path), logger.Err(err))
		return
	}
	content := string(data)

	fm := frontmatter.Parse(content)

	if title, ok := fm.String("title"); ok {
		entry.Title = title
	} else if _, present := fm["title"]; !present {
		if heading := frontmatter.Heading(content); heading != "" {
			entry.Title = heading
		}
	}

	if tags, ok := fm.List("tags"); ok {
		entry.Tags = tags
	}

	// A frontmatter modified key always wins over the version-control
	// timestamp, even when its value fails to parse.
	if modified, present := fm["modified"]; present {
		entry.Modified = frontmatter.ParseDate(modified)
	}
}

// directoryEntry builds the entry for a directory from its descriptor.
// Directories without a descriptor produce no entry. The root directory is
// addressed by the empty path and falls back to the title "Home".
func (s *Scanner) directoryEntry(rel, dir string) (DirectoryEntry, bool) {
	fields, ok := loadDescriptor(s.cfg.Root, dir)
	if !ok {
		return DirectoryEntry{}, false
	}

	title, ok := fields.str("title")
	if !ok {
		if rel == "" {
			title = "Home"
		} else {
			title = filepath.Base(rel)
		}
	}

	tags, ok := fields.strList("tags")
	if !ok {
		tags = []string{}
	}

	return DirectoryEntry{
		Path:        rel,
		Title:       title,
		Tags:        tags,
		Description: fields.nullableStr("description"),
		Icon:        fields.nullableStr("icon"),
		Thumbnail:   fields.nullableStr("thumbnail"),
	}, true
}
