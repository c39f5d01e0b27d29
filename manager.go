package sidecar

import (
	"context"
	"fmt"
)

type Manager interface {
	ListPosts(ctx context.Context, postsFile string) ([]Post, error)
	AnalyzeTags(ctx context.Context, postsFile string, minCount int) ([]TagCount, error)
	GenerateSidecars(ctx context.Context, postsFile, mediaDir string, dryRun bool) (*GenerateResult, error)
	MissingMedia(ctx context.Context, postsFile, mediaDir string) ([]MissingMedia, error)
}

type DefaultManager struct {
	config   *Config
	mappings TagMappings
}

func NewDefaultManager(config *Config) (*DefaultManager, error) {
	mappings, err := LoadTagMappings(config.MappingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag mappings: %w", err)
	}

	return &DefaultManager{
		config:   config,
		mappings: mappings,
	}, nil
}

// ListPosts parses the export at postsFile. An empty postsFile falls back to
// the configured posts file; the same fallback applies to every path
// argument on this manager.
func (m *DefaultManager) ListPosts(ctx context.Context, postsFile string) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return ParsePostsFile(m.postsPath(postsFile), m.mappings)
}

func (m *DefaultManager) AnalyzeTags(ctx context.Context, postsFile string, minCount int) ([]TagCount, error) {
	posts, err := m.ListPosts(ctx, postsFile)
	if err != nil {
		return nil, err
	}

	counter := NewCounter[string]()
	for _, post := range posts {
		for _, tag := range post.Tags {
			counter.Increment(tag)
		}
	}

	var result []TagCount
	for _, entry := range counter.SortedCounts() {
		if entry.Count < minCount {
			continue
		}
		result = append(result, TagCount{Tag: entry.Key, Count: entry.Count})
	}

	return result, nil
}

func (m *DefaultManager) GenerateSidecars(ctx context.Context, postsFile, mediaDir string, dryRun bool) (*GenerateResult, error) {
	posts, err := m.ListPosts(ctx, postsFile)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inventory, err := BuildInventory(m.mediaPath(mediaDir), m.config.SidecarExt)
	if err != nil {
		return nil, err
	}

	return WriteSidecars(posts, inventory, m.config.SidecarExt, dryRun)
}

func (m *DefaultManager) MissingMedia(ctx context.Context, postsFile, mediaDir string) ([]MissingMedia, error) {
	posts, err := m.ListPosts(ctx, postsFile)
	if err != nil {
		return nil, err
	}

	inventory, err := BuildInventory(m.mediaPath(mediaDir), m.config.SidecarExt)
	if err != nil {
		return nil, err
	}

	return ReportMissing(posts, inventory), nil
}

func (m *DefaultManager) postsPath(override string) string {
	if override != "" {
		return override
	}
	return m.config.PostsFile
}

func (m *DefaultManager) mediaPath(override string) string {
	if override != "" {
		return override
	}
	return m.config.MediaDir
}
