package scan

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/app"
	"github.com/tidyfile/tidy/scanner"
)

type Command struct {
	rootDir   string
	recursive bool
	hidden    bool
	ext       string
	jsonOut   bool
}

func (*Command) Name() string     { return "scan" }
func (*Command) Synopsis() string { return "List the files a rename run would consider" }
func (*Command) Usage() string {
	return `scan -dir <directory> [-recursive] [-hidden] [-ext jpg,png] [-json]:
  Scan a directory and print the files with their detected category and
  metadata support, without generating any rename proposals.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rootDir, "dir", "", "directory to scan (required)")
	f.BoolVar(&c.recursive, "recursive", false, "descend into subdirectories")
	f.BoolVar(&c.hidden, "hidden", false, "include hidden files")
	f.StringVar(&c.ext, "ext", "", "comma-separated extension filter")
	f.BoolVar(&c.jsonOut, "json", false, "print results as JSON")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.rootDir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	files, err := scanner.Scan(appCtx.Context, c.rootDir, scanner.Options{
		Recursive:     c.recursive,
		IncludeHidden: c.hidden,
		Extensions:    splitExtensions(c.ext),
		Stats:         appCtx.Stats,
	})
	if err != nil {
		log.Printf("Scan failed: %v", err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(files); err != nil {
			log.Printf("Failed to encode results: %v", err)
			return subcommands.ExitFailure
		}
	} else {
		for _, file := range files {
			meta := " "
			if file.MetadataSupported {
				meta = "m"
			}
			fmt.Printf("%-10s %s %10d  %s\n", file.Category, meta, file.Size, file.RelativePath)
		}
	}

	elapsed := time.Since(appCtx.Stats.StartTime)
	processedFiles := atomic.LoadInt64(&appCtx.Stats.ProcessedFiles)
	processedBytes := atomic.LoadInt64(&appCtx.Stats.ProcessedBytes)
	log.Printf("Scan completed in %v", elapsed)
	log.Printf("Found %d files (%.2f MB)", processedFiles, float64(processedBytes)/(1024*1024))

	return subcommands.ExitSuccess
}

func splitExtensions(ext string) []string {
	if ext == "" {
		return nil
	}
	var out []string
	for _, e := range strings.Split(ext, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
