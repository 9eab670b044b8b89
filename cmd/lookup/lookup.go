package lookup

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
	jsonOut     bool
}

func (*Command) Name() string     { return "lookup" }
func (*Command) Synopsis() string { return "Trace a file's rename history" }
func (*Command) Usage() string {
	return `lookup -file <path> [-json]:
  Show every recorded operation that touched the file, its original path,
  and where it currently lives.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.file, "file", "", "file path to look up (required)")
	f.BoolVar(&c.jsonOut, "json", false, "print as JSON")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
		return subcommands.ExitFailure
	}

	fileHistory, err := history.LookupFileHistory(appCtx.History, c.file)
	if err != nil {
		log.Printf("Lookup failed: %v", err)
		return subcommands.ExitFailure
	}
	if fileHistory == nil {
		fmt.Printf("No history found for file: %s\n", c.file)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileHistory); err != nil {
			log.Printf("Failed to encode: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	fmt.Printf("Original: %s\n", fileHistory.OriginalPath)
	fmt.Printf("Current:  %s\n", fileHistory.CurrentPath)
	if fileHistory.IsAtOriginal {
		fmt.Println("The file is at its original location.")
	}
	fmt.Printf("Operations (%d, newest first):\n", len(fileHistory.Operations))
	for _, op := range fileHistory.Operations {
		undone := ""
		if op.Undone {
			undone = "  (undone)"
		}
		fmt.Printf("  %s  %-8s  %s -> %s%s\n",
			op.Timestamp, op.OperationType, op.OriginalPath, op.NewPath, undone)
	}
	return subcommands.ExitSuccess
}
