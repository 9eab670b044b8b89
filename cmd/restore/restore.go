package restore

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
)

type Command struct {
	historyPath string
	file        string
	id          string
	dryRun      bool
	lookup      bool
	jsonOut     bool
}

func (*Command) Name() string     { return "restore" }
func (*Command) Synopsis() string { return "Move a single file back to its original path" }
func (*Command) Usage() string {
	return `restore -file <path> [-dry-run] [-lookup] [-json]
restore -id <operation> [-dry-run]:
  Restore one file to the path it had before any recorded rename, or restore
  a whole operation when -id is given. Unlike undo, restoring a single file
  leaves the operation's other files untouched.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.file, "file", "", "file to restore")
	f.StringVar(&c.id, "id", "", "restore a whole operation instead")
	f.BoolVar(&c.dryRun, "dry-run", false, "validate without moving anything")
	f.BoolVar(&c.lookup, "lookup", false, "show the file's history without restoring")
	f.BoolVar(&c.jsonOut, "json", false, "print the result as JSON")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" && c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
		return subcommands.ExitFailure
	}

	result, err := history.RestoreFile(appCtx.History, c.file, history.RestoreOptions{
		DryRun:      c.dryRun,
		OperationID: c.id,
		Lookup:      c.lookup,
	})
	if err != nil {
		log.Printf("Restore failed: %v", err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Printf("Failed to encode: %v", err)
			return subcommands.ExitFailure
		}
	} else {
		fmt.Println(result.Message)
		if result.History != nil {
			for _, op := range result.History.Operations {
				fmt.Printf("  %s  %-8s  %s -> %s\n",
					op.Timestamp, op.OperationType, op.OriginalPath, op.NewPath)
			}
		}
	}

	if !result.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
