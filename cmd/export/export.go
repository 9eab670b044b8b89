package export

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/app"
	"github.com/tidyfile/tidy/cmd/version"
	"github.com/tidyfile/tidy/export"
	"github.com/tidyfile/tidy/scanner"
)

type Command struct {
	dir        string
	out        string
	format     string
	preview    bool
	configPath string
	recursive  bool
	hidden     bool
	ext        string
	baseDir    string
	metadata   string
	llm        string
	checkFS    bool
}

func (*Command) Name() string     { return "export" }
func (*Command) Synopsis() string { return "Export scan results or a rename preview to JSON or CSV" }
func (*Command) Usage() string {
	return `export -dir <directory> [-out <file>] [-format json|csv] [-preview]:
  Scan a directory and write the results to a file. With -preview the export
  also carries the rename proposals the configured rules produce; the CSV
  format then uses the proposal shape instead of the file listing.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "directory to export (required)")
	f.StringVar(&c.out, "out", "", "output file (default: tidy-export-<timestamp>.<format>)")
	f.StringVar(&c.format, "format", "json", "export format: json or csv")
	f.BoolVar(&c.preview, "preview", false, "include rename proposals")
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
	f.BoolVar(&c.recursive, "recursive", false, "descend into subdirectories")
	f.BoolVar(&c.hidden, "hidden", false, "include hidden files")
	f.StringVar(&c.ext, "ext", "", "comma-separated extension filter")
	f.StringVar(&c.baseDir, "base", "", "destination root for folder structures")
	f.StringVar(&c.metadata, "metadata", "", "JSON sidecar with extracted file metadata")
	f.StringVar(&c.llm, "llm", "", "JSON sidecar with AI naming suggestions")
	f.BoolVar(&c.checkFS, "check-fs", true, "check proposed paths against the filesystem")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	format, err := export.ParseFormat(c.format)
	if err != nil {
		log.Print(err)
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	files, err := scanner.Scan(appCtx.Context, c.dir, scanner.Options{
		Recursive:     c.recursive,
		IncludeHidden: c.hidden,
		Extensions:    splitList(c.ext),
	})
	if err != nil {
		log.Printf("Scan failed: %v", err)
		return subcommands.ExitFailure
	}

	doc := export.BuildDocument(c.dir, files, nil, version.Version)
	if c.preview {
		if err := appCtx.LoadConfig(c.configPath); err != nil {
			log.Printf("Failed to load config: %v", err)
			return subcommands.ExitFailure
		}
		result, err := appCtx.GeneratePreview(files, app.PreviewParams{
			Directory:       c.dir,
			BaseDirectory:   c.baseDir,
			MetadataPath:    c.metadata,
			LLMPath:         c.llm,
			CheckFileSystem: c.checkFS,
		})
		if err != nil {
			log.Printf("Preview failed: %v", err)
			return subcommands.ExitFailure
		}
		doc = export.BuildDocument(c.dir, files, result, version.Version)
	}

	out := c.out
	if out == "" {
		out = export.DefaultFilename(format)
	}
	written, err := export.WriteFile(out, doc, format)
	if err != nil {
		log.Printf("Export failed: %v", err)
		return subcommands.ExitFailure
	}
	log.Printf("Exported %d file(s) to %s (%d bytes)", len(files), written.Path, written.Size)

	return subcommands.ExitSuccess
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
