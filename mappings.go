package sidecar

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrMappingFormat = errors.New("sidecar: invalid tag mapping")

// TagMappings rewrites tags before any consumer sees them. A source mapped to
// a non-empty destination renames the tag, a source mapped to "" drops it,
// and tags with no entry pass through unchanged.
type TagMappings map[string]string

// Apply returns the replacement for tag and whether the tag should be kept.
func (m TagMappings) Apply(tag string) (string, bool) {
	if m == nil {
		return tag, true
	}
	mapped, ok := m[tag]
	if !ok {
		return tag, true
	}
	if mapped == "" {
		return "", false
	}
	return mapped, true
}

// LoadTagMappings reads a mapping table from path: one "source,dest" pair per
// line, both fields trimmed, with an empty dest meaning the tag is dropped.
// Blank lines are skipped; any other line that does not split into exactly
// two fields fails with ErrMappingFormat. An empty path yields nil mappings.
func LoadTagMappings(path string) (TagMappings, error) {
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open tag mapping file %q: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	mappings := make(TagMappings)
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s line %d: expected \"source,dest\", got %q", ErrMappingFormat, path, line, text)
		}

		source := strings.TrimSpace(fields[0])
		dest := strings.TrimSpace(fields[1])
		mappings[source] = dest
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read tag mapping file %q: %w", path, err)
	}

	return mappings, nil
}
