package prune

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/app"
	"github.com/tidyfile/tidy/history"
)

type Command struct {
	historyPath string
	archivePath string
	max         int
	noArchive   bool
}

func (*Command) Name() string     { return "prune" }
func (*Command) Synopsis() string { return "Trim the history store and archive the removed entries" }
func (*Command) Usage() string {
	return `prune [-max <n>] [-no-archive]:
  Trim the JSON history store down to at most n entries (oldest removed
  first) and move the removed entries into the sqlite archive.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.archivePath, "archive-db", "", "archive database path (default: platform config dir)")
	f.IntVar(&c.max, "max", history.MaxEntries, "entries to retain in the live store")
	f.BoolVar(&c.noArchive, "no-archive", false, "discard pruned entries instead of archiving them")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.max < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
		return subcommands.ExitFailure
	}

	// open the archive before pruning so a broken archive aborts the prune
	if !c.noArchive {
		if err := appCtx.OpenArchive(c.archivePath); err != nil {
			log.Printf("Failed to open archive: %v", err)
			return subcommands.ExitFailure
		}
	}

	pruned, err := history.PruneStore(appCtx.History, c.max)
	if err != nil {
		log.Printf("Prune failed: %v", err)
		return subcommands.ExitFailure
	}
	if len(pruned) == 0 {
		fmt.Println("Nothing to prune.")
		return subcommands.ExitSuccess
	}

	if c.noArchive {
		fmt.Printf("Pruned %d entries.\n", len(pruned))
		return subcommands.ExitSuccess
	}

	inserted, err := appCtx.Archive.ArchiveEntries(pruned)
	if err != nil {
		log.Printf("Pruned %d entries but archiving failed: %v", len(pruned), err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Pruned %d entries, archived %d.\n", len(pruned), inserted)
	return subcommands.ExitSuccess
}
