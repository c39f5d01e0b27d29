package sidecar

type MediaType string

const (
	MediaTypeText  MediaType = "text"
	MediaTypePhoto MediaType = "photo"
	MediaTypeOther MediaType = "other"
)

type Post struct {
	ID         string    `json:"id"`
	URL        string    `json:"url,omitempty"`
	Tags       []string  `json:"tags"`
	Extension  string    `json:"extension,omitempty"`
	MediaType  MediaType `json:"media_type"`
	ImageCount int       `json:"image_count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type MissingMedia struct {
	PostID string `json:"post_id"`
	URL    string `json:"url,omitempty"`
}

type GenerateResult struct {
	SidecarsWritten []string `json:"sidecars_written"`
	PostsMatched    int      `json:"posts_matched"`
	PostsUnmatched  int      `json:"posts_unmatched"`
	DryRun          bool     `json:"dry_run,omitempty"`
}

// FileEntry is one media file found in the media directory. Stem is the file
// name without its final extension and is what post ids are matched against.
type FileEntry struct {
	Path string
	Name string
	Stem string
}
