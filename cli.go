package sidecar

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RunCmdOptions contains options for customizing RunCmd behavior
type RunCmdOptions struct {
	// MCPTransport allows providing a custom transport for MCP server (used for testing)
	MCPTransport *mcp.InMemoryTransport
	// Stdout writer for normal output (defaults to os.Stdout)
	Stdout io.Writer
	// Stderr writer for error output (defaults to os.Stderr)
	Stderr io.Writer
}

// commandContext holds runtime context for command execution
type commandContext struct {
	stdout  io.Writer
	stderr  io.Writer
	manager Manager
}

func RunCmd(args []string, options *RunCmdOptions) error {
	if len(args) < 1 {
		stdout := io.Writer(os.Stdout)
		if options != nil && options.Stdout != nil {
			stdout = options.Stdout
		}
		return ShowHelp(stdout)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	var (
		help         = fs.Bool("h", false, "Show help")
		mcpOption    = fs.Bool("mcp", false, "Run as MCP server")
		verbose      = fs.Bool("v", false, "Verbose output")
		dryRun       = fs.Bool("dry-run", false, "Show what would be written without writing files")
		configFile   = fs.String("config", "", "Path to configuration file")
		mappingsFile = fs.String("mappings", "", "Path to tag mapping file")
	)

	if len(args) > 1 {
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
	}

	if *help {
		stdout := io.Writer(os.Stdout)
		if options != nil && options.Stdout != nil {
			stdout = options.Stdout
		}
		return ShowHelp(stdout)
	}

	if *mcpOption {
		var transport *mcp.InMemoryTransport
		if options != nil && options.MCPTransport != nil {
			transport = options.MCPTransport
		}
		return RunMCPServer(*configFile, transport)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		stdout := io.Writer(os.Stdout)
		if options != nil && options.Stdout != nil {
			stdout = options.Stdout
		}
		return ShowHelp(stdout)
	}

	config, err := LoadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *mappingsFile != "" {
		config.MappingsFile = *mappingsFile
	}

	// Initialize command context with writers
	cmdCtx := &commandContext{
		stdout: io.Writer(os.Stdout),
		stderr: io.Writer(os.Stderr),
	}

	if options != nil {
		if options.Stdout != nil {
			cmdCtx.stdout = options.Stdout
		}
		if options.Stderr != nil {
			cmdCtx.stderr = options.Stderr
		}
	}

	ctx := context.Background()
	manager, err := NewDefaultManager(config)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}
	cmdCtx.manager = manager

	switch remaining[0] {
	case "generate":
		return generateCommand(ctx, cmdCtx, remaining[1:], config, *dryRun, *verbose)
	case "analyze":
		return analyzeCommand(ctx, cmdCtx, remaining[1:], config)
	case "missing":
		return missingCommand(ctx, cmdCtx, remaining[1:], config)
	case "posts":
		return postsCommand(ctx, cmdCtx, remaining[1:], config)
	default:
		return fmt.Errorf("unknown command: %s", remaining[0])
	}
}

func ShowHelp(w io.Writer) error {
	help := `Sidecar - Tag file generator for Tumblr exports

Usage:
  sidecar [OPTIONS] COMMAND [ARGS...]
  sidecar -mcp              Run as MCP server

Options:
  -h, --help           Show this help message
  -v, --verbose        Enable verbose output
  --dry-run            Preview generation without writing files
  --config FILE        Path to configuration file
  --mappings FILE      Path to tag mapping file (one "source,dest" per line)
  -mcp                 Run as MCP server

Commands:
  generate     Write sidecar tag files for media belonging to each post
  analyze      Aggregate tag usage across all posts
  missing      Report photo posts with no media files on disk
  posts        List parsed posts

Examples:
  sidecar generate --posts=posts.xml --media=media
  sidecar generate --dry-run -v
  sidecar analyze --min-count=2
  sidecar --mappings=remap.csv analyze --json
  sidecar missing --posts=posts.xml --media=media
  sidecar -mcp --config=sidecar.yaml

For more information, visit: https://github.com/0xazure/sidecar
`
	_, _ = fmt.Fprint(w, help)
	return nil
}

func generateCommand(ctx context.Context, cmdCtx *commandContext, args []string, config *Config, globalDryRun bool, verbose bool) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)

	posts := fs.String("posts", config.PostsFile, "Path to the posts.xml export")
	media := fs.String("media", config.MediaDir, "Directory containing downloaded media files")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	localDryRun := fs.Bool("dry-run", false, "Show what would be written without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dryRun := globalDryRun || *localDryRun
	if dryRun {
		_, _ = fmt.Fprintln(cmdCtx.stdout, "DRY RUN MODE - No files will be written")
	}

	result, err := cmdCtx.manager.GenerateSidecars(ctx, *posts, *media, dryRun)
	if err != nil {
		return err
	}

	if *jsonOutput {
		return json.NewEncoder(cmdCtx.stdout).Encode(result)
	}

	_, _ = fmt.Fprintf(cmdCtx.stdout, "\nSidecar files written: %d\n", len(result.SidecarsWritten))
	if verbose {
		for _, file := range result.SidecarsWritten {
			_, _ = fmt.Fprintf(cmdCtx.stdout, "  %s\n", file)
		}
	}

	if result.PostsUnmatched > 0 {
		_, _ = fmt.Fprintf(cmdCtx.stdout, "Posts without matching media: %d\n", result.PostsUnmatched)
	}

	return nil
}

func analyzeCommand(ctx context.Context, cmdCtx *commandContext, args []string, config *Config) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)

	posts := fs.String("posts", config.PostsFile, "Path to the posts.xml export")
	minCount := fs.Int("min-count", 1, "Minimum usage count")
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	counts, err := cmdCtx.manager.AnalyzeTags(ctx, *posts, *minCount)
	if err != nil {
		return err
	}

	if *jsonOutput {
		return json.NewEncoder(cmdCtx.stdout).Encode(counts)
	}

	for _, count := range counts {
		_, _ = fmt.Fprintf(cmdCtx.stdout, "%s: %d\n", count.Tag, count.Count)
	}

	return nil
}

func missingCommand(ctx context.Context, cmdCtx *commandContext, args []string, config *Config) error {
	fs := flag.NewFlagSet("missing", flag.ContinueOnError)

	posts := fs.String("posts", config.PostsFile, "Path to the posts.xml export")
	media := fs.String("media", config.MediaDir, "Directory containing downloaded media files")
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	missing, err := cmdCtx.manager.MissingMedia(ctx, *posts, *media)
	if err != nil {
		return err
	}

	if *jsonOutput {
		return json.NewEncoder(cmdCtx.stdout).Encode(missing)
	}

	for _, m := range missing {
		if m.URL != "" {
			_, _ = fmt.Fprintf(cmdCtx.stdout, "%s %s\n", m.PostID, m.URL)
		} else {
			_, _ = fmt.Fprintf(cmdCtx.stdout, "%s\n", m.PostID)
		}
	}

	return nil
}

func postsCommand(ctx context.Context, cmdCtx *commandContext, args []string, config *Config) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)

	postsFile := fs.String("posts", config.PostsFile, "Path to the posts.xml export")
	maxResults := fs.Int("max-results", 0, "Maximum posts to show (0 shows all)")
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	posts, err := cmdCtx.manager.ListPosts(ctx, *postsFile)
	if err != nil {
		return err
	}

	if *maxResults > 0 && len(posts) > *maxResults {
		posts = posts[:*maxResults]
	}

	if *jsonOutput {
		return json.NewEncoder(cmdCtx.stdout).Encode(posts)
	}

	for _, post := range posts {
		_, _ = fmt.Fprintf(cmdCtx.stdout, "%s  type=%s tags=%d images=%d\n", post.ID, post.MediaType, len(post.Tags), post.ImageCount)
	}

	return nil
}
