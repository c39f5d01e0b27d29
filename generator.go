package sidecar

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
)

const DefaultFilePermissions = 0644

// WriteSidecars writes one tag file next to every inventory entry belonging
// to a post. An entry belongs to a post when its stem starts with the post
// id. The payload is the post's tags, one per line, and is written even when
// empty. Existing sidecar files are overwritten; the first write failure
// aborts the run.
func WriteSidecars(posts []Post, inventory []FileEntry, sidecarExt string, dryRun bool) (*GenerateResult, error) {
	result := &GenerateResult{
		SidecarsWritten: []string{},
		DryRun:          dryRun,
	}

	for _, post := range posts {
		payload := tagPayload(post.Tags)
		matched := false

		for _, entry := range inventory {
			if !strings.HasPrefix(entry.Stem, post.ID) {
				continue
			}
			matched = true

			// The inventory is a snapshot; the file may be gone by now.
			if _, err := os.Stat(entry.Path); err != nil {
				continue
			}

			target := entry.Path + sidecarExt
			if !dryRun {
				if err := os.WriteFile(target, payload, DefaultFilePermissions); err != nil {
					return nil, fmt.Errorf("unable to write sidecar %q: %w", target, err)
				}
			}
			result.SidecarsWritten = append(result.SidecarsWritten, target)
		}

		if matched {
			result.PostsMatched++
		} else {
			result.PostsUnmatched++
		}
	}

	sort.Strings(result.SidecarsWritten)
	return result, nil
}

func tagPayload(tags []string) []byte {
	var buf bytes.Buffer
	for _, tag := range tags {
		buf.WriteString(tag)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func hasPrefixMatch(inventory []FileEntry, id string) bool {
	for _, entry := range inventory {
		if strings.HasPrefix(entry.Stem, id) {
			return true
		}
	}
	return false
}
