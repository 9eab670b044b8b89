package apply

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/app"
	previewcmd "github.com/tidyfile/tidy/cmd/preview"
	"github.com/tidyfile/tidy/executor"
	"github.com/tidyfile/tidy/history"
	"github.com/tidyfile/tidy/models"
	"github.com/tidyfile/tidy/selection"
)

type Command struct {
	dir         string
	configPath  string
	historyPath string
	archivePath string
	recursive   bool
	hidden      bool
	ext         string
	baseDir     string
	metadata    string
	llm         string
	dryRun      bool
	yes         bool
}

func (*Command) Name() string     { return "apply" }
func (*Command) Synopsis() string { return "Execute the ready rename proposals and record them" }
func (*Command) Usage() string {
	return `apply -dir <directory> [-config <file>] [-recursive] [-base <dir>]
        [-metadata <file>] [-llm <file>] [-dry-run] [-yes]:
  Generate a preview, execute every proposal that is ready, and record the
  operation in history so it can be undone.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "directory to process (required)")
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.archivePath, "archive-db", "", "archive database path (default: platform config dir)")
	f.BoolVar(&c.recursive, "recursive", false, "descend into subdirectories")
	f.BoolVar(&c.hidden, "hidden", false, "include hidden files")
	f.StringVar(&c.ext, "ext", "", "comma-separated extension filter")
	f.StringVar(&c.baseDir, "base", "", "destination root for folder structures")
	f.StringVar(&c.metadata, "metadata", "", "JSON sidecar with extracted file metadata")
	f.StringVar(&c.llm, "llm", "", "JSON sidecar with AI naming suggestions")
	f.BoolVar(&c.dryRun, "dry-run", false, "validate everything but rename nothing")
	f.BoolVar(&c.yes, "yes", false, "skip the confirmation prompt")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	setupSignalHandling(appCtx)

	if err := appCtx.LoadConfig(c.configPath); err != nil {
		log.Printf("Failed to load config: %v", err)
		return subcommands.ExitFailure
	}
	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
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
		CheckFileSystem: true,
	})
	if err != nil {
		log.Printf("Preview failed: %v", err)
		return subcommands.ExitFailure
	}

	manager := selection.NewManager(result)
	manager.SelectAll()
	executables := manager.GetExecutableProposals()

	previewcmd.PrintPreview(result)
	if len(executables) == 0 {
		log.Println("Nothing to rename.")
		return subcommands.ExitSuccess
	}

	if !c.yes && !c.dryRun {
		if !confirm(fmt.Sprintf("Rename %d file(s)?", len(executables))) {
			log.Println("Aborted.")
			return subcommands.ExitSuccess
		}
	}

	batch, err := executor.Execute(appCtx.Context, executables, executor.Options{
		DryRun: c.dryRun,
		Progress: func(current, total int) {
			atomic.StoreInt64(&appCtx.Stats.ProcessedFiles, int64(current))
		},
	})
	if err != nil {
		log.Printf("Execution failed: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("\n%d renamed, %d skipped, %d failed", batch.Summary.Succeeded, batch.Summary.Skipped, batch.Summary.Failed)
	if batch.Summary.DirectoriesCreated > 0 {
		fmt.Printf(", %d directories created", batch.Summary.DirectoriesCreated)
	}
	fmt.Printf(" in %dms\n", batch.DurationMs)
	for _, r := range batch.Results {
		if r.Outcome != models.OutcomeSuccess {
			fmt.Printf("  %s: %s (%s)\n", r.Outcome, r.OriginalPath, r.Error)
		}
	}

	if c.dryRun {
		return subcommands.ExitSuccess
	}

	entry, pruned, err := history.RecordOperation(appCtx.History, batch, appCtx.Config.Preferences.MaxHistoryEntries)
	if err != nil {
		log.Printf("Warning: operation executed but not recorded: %v", err)
		return subcommands.ExitFailure
	}
	log.Printf("Recorded operation %s", entry.ID)

	if len(pruned) > 0 {
		if err := appCtx.OpenArchive(c.archivePath); err != nil {
			log.Printf("Warning: %d pruned entries not archived: %v", len(pruned), err)
		} else if n, err := appCtx.Archive.ArchiveEntries(pruned); err != nil {
			log.Printf("Warning: failed to archive pruned entries: %v", err)
		} else {
			log.Printf("Archived %d pruned history entries", n)
		}
	}

	if !batch.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
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

func setupSignalHandling(app *app.AppContext) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Force quit flag
	var forceQuit atomic.Bool

	go func() {
		for sig := range sigChan {
			log.Printf("Received signal: %v", sig)
			if forceQuit.Load() {
				log.Println("Forcing immediate shutdown...")
				os.Exit(1)
			}

			forceQuit.Store(true)
			log.Println("Press Ctrl+C again to force quit. Wait for the current file to complete...")
			app.Cancel()

			// Reset forceQuit flag after 5 seconds
			go func() {
				time.Sleep(5 * time.Second)
				forceQuit.Store(false)
			}()
		}
	}()
}
