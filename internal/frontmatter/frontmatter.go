// Package frontmatter parses the delimited metadata block at the top of a
// markdown document. It is a deliberately small line-based parser covering
// the subset the content trees actually use: scalar key/value pairs, inline
// arrays, quoted strings, booleans, and "- item" list continuation lines.
// It is not general YAML; malformed or nested structures degrade silently.
package frontmatter

import (
	"regexp"
	"strings"
	"time"
)

// Map holds parsed frontmatter. Values are string, bool, or []string.
type Map map[string]interface{}

var (
	blockRe   = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*\n`)
	headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// Parse extracts frontmatter from raw document content. Content without a
// leading --- block yields an empty map.
func Parse(content string) Map {
	fm := Map{}

	match := blockRe.FindStringSubmatch(content)
	if match == nil {
		return fm
	}

	// Insertion order of keys, so continuation lines can find the most
	// recently introduced key. Re-assigning a key keeps its position.
	var order []string

	for _, line := range strings.Split(match[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			key := strings.TrimSpace(line[:idx])
			value := strings.TrimSpace(line[idx+1:])

			if _, seen := fm[key]; !seen {
				order = append(order, key)
			}
			fm[key] = parseScalar(value)
			continue
		}

		if item, ok := strings.CutPrefix(line, "- "); ok && len(order) > 0 {
			// Continuation item appended to the most recent list key
			last := order[len(order)-1]
			if list, ok := fm[last].([]string); ok {
				fm[last] = append(list, stripQuotes(strings.TrimSpace(item)))
			}
		}
	}

	return fm
}

// parseScalar interprets a single value: inline array, quoted string,
// boolean, or bare string. An empty value becomes an empty list in
// anticipation of "- item" continuation lines.
func parseScalar(value string) interface{} {
	switch {
	case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
		var items []string
		for _, item := range strings.Split(value[1:len(value)-1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			items = append(items, stripQuotes(item))
		}
		if items == nil {
			items = []string{}
		}
		return items
	case len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`):
		return value[1 : len(value)-1]
	case len(value) >= 2 && strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`):
		return value[1 : len(value)-1]
	case strings.EqualFold(value, "true"):
		return true
	case strings.EqualFold(value, "false"):
		return false
	case value == "":
		return []string{}
	default:
		return value
	}
}

// stripQuotes trims any mix of single and double quotes from both ends.
func stripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

// String returns the value for key when it is a string.
func (m Map) String(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// List returns the value for key when it is a list.
func (m Map) List(key string) ([]string, bool) {
	v, ok := m[key].([]string)
	return v, ok
}

// Heading returns the first top-level "# " heading after the frontmatter
// block, or "" when the document has none.
func Heading(content string) string {
	stripped := blockRe.ReplaceAllString(content, "")
	if match := headingRe.FindStringSubmatch(stripped); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// dateFormats are tried in order; the first successful parse wins.
var dateFormats = []string{
	"2006-01-02",          // 2024-01-15
	"2006-01-02T15:04:05", // 2024-01-15T10:30:00
	"2006/01/02",          // 2024/01/15
}

// ParseDate converts a frontmatter date value to a Unix timestamp. Integer
// values pass through unchanged as epoch seconds; strings are tried against
// the fixed format list in local time. Anything else yields nil.
func ParseDate(value interface{}) *int64 {
	switch v := value.(type) {
	case int:
		ts := int64(v)
		return &ts
	case int64:
		return &v
	case string:
		for _, format := range dateFormats {
			if t, err := time.ParseInLocation(format, v, time.Local); err == nil {
				ts := t.Unix()
				return &ts
			}
		}
	}
	return nil
}
