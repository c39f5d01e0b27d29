package sidecar

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Parameter structures for MCP tools
type ListPostsParams struct {
	PostsFile  string `json:"posts_file,omitempty"`
	MaxResults *int   `json:"max_results,omitempty"`
}

type AnalyzeTagsParams struct {
	PostsFile  string `json:"posts_file,omitempty"`
	MinCount   int    `json:"min_count"`
	MaxResults *int   `json:"max_results,omitempty"`
}

type GenerateSidecarsParams struct {
	PostsFile string `json:"posts_file,omitempty"`
	MediaDir  string `json:"media_dir,omitempty"`
	DryRun    bool   `json:"dry_run"`
}

type MissingMediaParams struct {
	PostsFile  string `json:"posts_file,omitempty"`
	MediaDir   string `json:"media_dir,omitempty"`
	MaxResults *int   `json:"max_results,omitempty"`
}

// Tool handler functions
func ListPostsTool(ctx context.Context, req *mcp.CallToolRequest, args ListPostsParams, manager Manager) (*mcp.CallToolResult, any, error) {
	result, err := manager.ListPosts(ctx, args.PostsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if args.MaxResults != nil && len(result) > *args.MaxResults {
		result = result[:*args.MaxResults]
	}

	return nil, result, nil
}

func AnalyzeTagsTool(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeTagsParams, manager Manager) (*mcp.CallToolResult, any, error) {
	result, err := manager.AnalyzeTags(ctx, args.PostsFile, args.MinCount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyze tags: %w", err)
	}

	if args.MaxResults != nil && len(result) > *args.MaxResults {
		result = result[:*args.MaxResults]
	}

	return nil, result, nil
}

func GenerateSidecarsTool(ctx context.Context, req *mcp.CallToolRequest, args GenerateSidecarsParams, manager Manager) (*mcp.CallToolResult, any, error) {
	result, err := manager.GenerateSidecars(ctx, args.PostsFile, args.MediaDir, args.DryRun)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate sidecars: %w", err)
	}

	return nil, result, nil
}

func MissingMediaTool(ctx context.Context, req *mcp.CallToolRequest, args MissingMediaParams, manager Manager) (*mcp.CallToolResult, any, error) {
	result, err := manager.MissingMedia(ctx, args.PostsFile, args.MediaDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to report missing media: %w", err)
	}

	if args.MaxResults != nil && len(result) > *args.MaxResults {
		result = result[:*args.MaxResults]
	}

	return nil, result, nil
}

// RunMCPServer starts the MCP server implementation using the official Go SDK
// If transport is nil, it will use stdio transport
func RunMCPServer(configPath string, transport *mcp.InMemoryTransport) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	manager, err := NewDefaultManager(config)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "sidecar",
		Version: "1.0.0",
	}, nil)

	// Register all MCP tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List posts parsed from a Tumblr posts.xml export",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListPostsParams) (*mcp.CallToolResult, any, error) {
		return ListPostsTool(ctx, req, args, manager)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_tags",
		Description: "Aggregate tag usage counts across all posts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeTagsParams) (*mcp.CallToolResult, any, error) {
		return AnalyzeTagsTool(ctx, req, args, manager)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_sidecars",
		Description: "Write sidecar tag files for media belonging to each post",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GenerateSidecarsParams) (*mcp.CallToolResult, any, error) {
		return GenerateSidecarsTool(ctx, req, args, manager)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "missing_media",
		Description: "Report photo posts with no media files on disk",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MissingMediaParams) (*mcp.CallToolResult, any, error) {
		return MissingMediaTool(ctx, req, args, manager)
	})

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Use provided transport or default to stdio
	if transport != nil {
		// Use the provided InMemoryTransport for testing
		return server.Run(ctx, transport)
	} else {
		// Use stdio transport for production
		return server.Run(ctx, &mcp.StdioTransport{})
	}
}
