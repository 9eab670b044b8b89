package history

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/app"
	"github.com/tidyfile/tidy/history"
	"github.com/tidyfile/tidy/models"
)

type Command struct {
	historyPath string
	archivePath string
	limit       int
	opType      string
	id          string
	archived    bool
	jsonOut     bool
}

func (*Command) Name() string     { return "history" }
func (*Command) Synopsis() string { return "Show recorded rename operations" }
func (*Command) Usage() string {
	return `history [-limit <n>] [-type rename|move|organize] [-id <operation>]
        [-archived] [-json]:
  List recorded operations newest first, show a single operation in full,
  or list entries pruned into the sqlite archive.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.archivePath, "archive-db", "", "archive database path (default: platform config dir)")
	f.IntVar(&c.limit, "limit", 20, "maximum entries to show (0 = all)")
	f.StringVar(&c.opType, "type", "", "filter by operation type")
	f.StringVar(&c.id, "id", "", "show a single operation in full")
	f.BoolVar(&c.archived, "archived", false, "list archived entries instead of the live store")
	f.BoolVar(&c.jsonOut, "json", false, "print as JSON")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
		return subcommands.ExitFailure
	}

	if c.id != "" {
		return c.showEntry(appCtx)
	}

	var entries []models.OperationHistoryEntry
	var err error
	if c.archived {
		if err := appCtx.OpenArchive(c.archivePath); err != nil {
			log.Printf("Failed to open archive: %v", err)
			return subcommands.ExitFailure
		}
		entries, err = appCtx.Archive.List(c.limit, models.OperationType(c.opType))
	} else {
		entries, err = history.GetHistory(appCtx.History, history.QueryOptions{
			Limit: c.limit,
			Type:  models.OperationType(c.opType),
		})
	}
	if err != nil {
		log.Printf("Failed to read history: %v", err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No operations recorded.")
		return subcommands.ExitSuccess
	}
	for _, e := range entries {
		undone := ""
		if e.UndoneAt != "" {
			undone = "  (undone)"
		}
		fmt.Printf("%s  %-8s  %3d files  %d ok / %d skip / %d fail  %s%s\n",
			e.ID, e.OperationType, e.FileCount,
			e.Summary.Succeeded, e.Summary.Skipped, e.Summary.Failed,
			e.Timestamp, undone)
	}
	return subcommands.ExitSuccess
}

func (c *Command) showEntry(appCtx *app.AppContext) subcommands.ExitStatus {
	entry, err := history.GetHistoryEntry(appCtx.History, c.id)
	if err != nil {
		log.Printf("Failed to read history: %v", err)
		return subcommands.ExitFailure
	}
	if entry == nil {
		if archiveErr := appCtx.OpenArchive(c.archivePath); archiveErr == nil {
			entry, err = appCtx.Archive.Get(c.id)
			if err != nil {
				log.Printf("Failed to read archive: %v", err)
				return subcommands.ExitFailure
			}
		}
	}
	if entry == nil {
		log.Printf("Operation not found: %s", c.id)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		return printJSON(entry)
	}
	fmt.Printf("Operation %s (%s) at %s\n", entry.ID, entry.OperationType, entry.Timestamp)
	if entry.UndoneAt != "" {
		fmt.Printf("Undone at %s\n", entry.UndoneAt)
	}
	for _, file := range entry.Files {
		if file.Success {
			fmt.Printf("  %s -> %s\n", file.OriginalPath, file.NewPath)
		} else {
			fmt.Printf("  %s (failed: %s)\n", file.OriginalPath, file.Error)
		}
	}
	for _, dir := range entry.DirectoriesCreated {
		fmt.Printf("  created %s\n", dir)
	}
	return subcommands.ExitSuccess
}

func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("Failed to encode: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
