package sidecar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xazure/sidecar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mediaFixture creates a media directory holding the named files and scans it.
func mediaFixture(t *testing.T, names ...string) (string, []sidecar.FileEntry) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("media"), 0644))
	}

	inventory, err := sidecar.BuildInventory(dir, ".txt")
	require.NoError(t, err)
	return dir, inventory
}

func TestWriteSidecars(t *testing.T) {
	dir, inventory := mediaFixture(t, "100_r1_1280.jpg", "100_r2_1280.jpg", "200_o1.png", "999.gif")

	posts := []sidecar.Post{
		{ID: "100", Tags: []string{"sunset", "beach"}},
		{ID: "200", Tags: []string{}},
		{ID: "300", Tags: []string{"orphan"}},
	}

	result, err := sidecar.WriteSidecars(posts, inventory, ".txt", false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.PostsMatched)
	assert.Equal(t, 1, result.PostsUnmatched)
	assert.False(t, result.DryRun)
	assert.Equal(t, []string{
		filepath.Join(dir, "100_r1_1280.jpg.txt"),
		filepath.Join(dir, "100_r2_1280.jpg.txt"),
		filepath.Join(dir, "200_o1.png.txt"),
	}, result.SidecarsWritten)

	content, err := os.ReadFile(filepath.Join(dir, "100_r1_1280.jpg.txt"))
	require.NoError(t, err)
	assert.Equal(t, "sunset\nbeach\n", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "100_r2_1280.jpg.txt"))
	require.NoError(t, err)
	assert.Equal(t, "sunset\nbeach\n", string(content))

	// a post with no tags still gets a sidecar, just an empty one
	content, err = os.ReadFile(filepath.Join(dir, "200_o1.png.txt"))
	require.NoError(t, err)
	assert.Empty(t, string(content))

	_, err = os.Stat(filepath.Join(dir, "999.gif.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteSidecarsOverwrites(t *testing.T) {
	dir, inventory := mediaFixture(t, "100.jpg")
	target := filepath.Join(dir, "100.jpg.txt")
	require.NoError(t, os.WriteFile(target, []byte("stale contents\n"), 0644))

	posts := []sidecar.Post{{ID: "100", Tags: []string{"fresh"}}}
	_, err := sidecar.WriteSidecars(posts, inventory, ".txt", false)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(content))
}

func TestWriteSidecarsIdempotent(t *testing.T) {
	dir, inventory := mediaFixture(t, "100.jpg")
	posts := []sidecar.Post{{ID: "100", Tags: []string{"one", "two"}}}

	first, err := sidecar.WriteSidecars(posts, inventory, ".txt", false)
	require.NoError(t, err)

	// rescan: the sidecar written above is not media and must not gain one
	inventory, err = sidecar.BuildInventory(dir, ".txt")
	require.NoError(t, err)

	second, err := sidecar.WriteSidecars(posts, inventory, ".txt", false)
	require.NoError(t, err)
	assert.Equal(t, first.SidecarsWritten, second.SidecarsWritten)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	content, err := os.ReadFile(filepath.Join(dir, "100.jpg.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(content))
}

func TestWriteSidecarsSkipsVanishedFiles(t *testing.T) {
	dir, inventory := mediaFixture(t, "100.jpg", "100_r2.jpg")
	require.NoError(t, os.Remove(filepath.Join(dir, "100_r2.jpg")))

	posts := []sidecar.Post{{ID: "100", Tags: []string{"tag"}}}
	result, err := sidecar.WriteSidecars(posts, inventory, ".txt", false)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "100.jpg.txt")}, result.SidecarsWritten)
	_, err = os.Stat(filepath.Join(dir, "100_r2.jpg.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteSidecarsDryRun(t *testing.T) {
	dir, inventory := mediaFixture(t, "100.jpg")
	posts := []sidecar.Post{{ID: "100", Tags: []string{"tag"}}}

	result, err := sidecar.WriteSidecars(posts, inventory, ".txt", true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.PostsMatched)
	assert.Equal(t, []string{filepath.Join(dir, "100.jpg.txt")}, result.SidecarsWritten)

	_, err = os.Stat(filepath.Join(dir, "100.jpg.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteSidecarsAbortsOnWriteError(t *testing.T) {
	dir, inventory := mediaFixture(t, "100.jpg", "200.jpg")

	// a directory squatting on the first sidecar path makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "100.jpg.txt"), 0755))

	posts := []sidecar.Post{
		{ID: "100", Tags: []string{"tag"}},
		{ID: "200", Tags: []string{"tag"}},
	}

	result, err := sidecar.WriteSidecars(posts, inventory, ".txt", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to write sidecar")
	assert.Nil(t, result)

	_, err = os.Stat(filepath.Join(dir, "200.jpg.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestReportMissing(t *testing.T) {
	_, inventory := mediaFixture(t, "100_r1.jpg")

	posts := []sidecar.Post{
		{ID: "100", MediaType: sidecar.MediaTypePhoto, URL: "https://example.tumblr.com/post/100"},
		{ID: "200", MediaType: sidecar.MediaTypePhoto, URL: "https://example.tumblr.com/post/200"},
		{ID: "300", MediaType: sidecar.MediaTypeText, URL: "https://example.tumblr.com/post/300"},
		{ID: "400", MediaType: sidecar.MediaTypeOther},
	}

	missing := sidecar.ReportMissing(posts, inventory)
	require.Len(t, missing, 1)
	assert.Equal(t, "200", missing[0].PostID)
	assert.Equal(t, "https://example.tumblr.com/post/200", missing[0].URL)
}

func TestReportMissingEmptyInventory(t *testing.T) {
	posts := []sidecar.Post{
		{ID: "100", MediaType: sidecar.MediaTypePhoto},
		{ID: "200", MediaType: sidecar.MediaTypeText},
	}

	missing := sidecar.ReportMissing(posts, nil)
	require.Len(t, missing, 1)
	assert.Equal(t, "100", missing[0].PostID)
}

func TestReportMissingAllPresent(t *testing.T) {
	_, inventory := mediaFixture(t, "100_r1.jpg")

	posts := []sidecar.Post{{ID: "100", MediaType: sidecar.MediaTypePhoto}}
	assert.Empty(t, sidecar.ReportMissing(posts, inventory))
}
