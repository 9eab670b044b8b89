package preview

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/app"
	"github.com/tidyfile/tidy/models"
)

type Command struct {
	dir        string
	configPath string
	recursive  bool
	hidden     bool
	ext        string
	baseDir    string
	metadata   string
	llm        string
	checkFS    bool
	jsonOut    bool
}

func (*Command) Name() string     { return "preview" }
func (*Command) Synopsis() string { return "Generate rename proposals without touching any file" }
func (*Command) Usage() string {
	return `preview -dir <directory> [-config <file>] [-recursive] [-base <dir>]
        [-metadata <file>] [-llm <file>] [-check-fs] [-json]:
  Scan a directory, apply the configured rules and templates, and print the
  resulting rename proposals with their status and issues.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "directory to preview (required)")
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
	f.BoolVar(&c.recursive, "recursive", false, "descend into subdirectories")
	f.BoolVar(&c.hidden, "hidden", false, "include hidden files")
	f.StringVar(&c.ext, "ext", "", "comma-separated extension filter")
	f.StringVar(&c.baseDir, "base", "", "destination root for folder structures")
	f.StringVar(&c.metadata, "metadata", "", "JSON sidecar with extracted file metadata")
	f.StringVar(&c.llm, "llm", "", "JSON sidecar with AI naming suggestions")
	f.BoolVar(&c.checkFS, "check-fs", true, "check proposed paths against the filesystem")
	f.BoolVar(&c.jsonOut, "json", false, "print the full preview as JSON")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.LoadConfig(c.configPath); err != nil {
		log.Printf("Failed to load config: %v", err)
		return subcommands.ExitFailure
	}

	result, err := appCtx.BuildPreview(app.PreviewParams{
		Directory:       c.dir,
		Recursive:       c.recursive,
		IncludeHidden:   c.hidden,
		Extensions:      splitList(c.ext),
		BaseDirectory:   c.baseDir,
		MetadataPath:    c.metadata,
		LLMPath:         c.llm,
		CheckFileSystem: c.checkFS,
	})
	if err != nil {
		log.Printf("Preview failed: %v", err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Printf("Failed to encode preview: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	PrintPreview(result)
	return subcommands.ExitSuccess
}

// PrintPreview renders a human-readable proposal listing. Shared with the
// apply command's confirmation output.
func PrintPreview(result *models.RenamePreview) {
	for _, p := range result.Proposals {
		marker := statusMarker(p.Status)
		if p.IsMoveOperation {
			fmt.Printf("%s %s -> %s\n", marker, p.OriginalPath, p.ProposedPath)
		} else if p.Status == models.StatusNoChange {
			fmt.Printf("%s %s (unchanged)\n", marker, p.OriginalName)
		} else {
			fmt.Printf("%s %s -> %s\n", marker, p.OriginalName, p.ProposedName)
		}
		for _, issue := range p.Issues {
			fmt.Printf("    [%s] %s\n", issue.Code, issue.Message)
		}
	}
	s := result.Summary
	fmt.Printf("\n%d files: %d ready, %d conflicts, %d missing data, %d unchanged, %d invalid\n",
		s.Total, s.Ready, s.Conflicts, s.MissingData, s.NoChange, s.InvalidName)
	if s.MoveOperations > 0 {
		fmt.Printf("%d files would move to a different directory\n", s.MoveOperations)
	}
}

func statusMarker(status models.RenameStatus) string {
	switch status {
	case models.StatusReady:
		return "+"
	case models.StatusConflict:
		return "!"
	case models.StatusMissingData:
		return "?"
	case models.StatusInvalidName:
		return "x"
	}
	return "="
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
