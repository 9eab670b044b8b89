package undo

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
	id          string
	dryRun      bool
	force       bool
}

func (*Command) Name() string     { return "undo" }
func (*Command) Synopsis() string { return "Reverse a recorded rename operation" }
func (*Command) Usage() string {
	return `undo [-id <operation>] [-dry-run] [-force]:
  Move every file of an operation back to its original path. Without -id the
  most recent operation is undone. If some files cannot be restored, nothing
  is moved unless -force is given.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.id, "id", "", "operation to undo (default: most recent)")
	f.BoolVar(&c.dryRun, "dry-run", false, "validate without moving anything")
	f.BoolVar(&c.force, "force", false, "restore what can be restored even if some files fail")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
		return subcommands.ExitFailure
	}

	result, err := history.UndoOperation(appCtx.History, c.id, history.UndoOptions{
		DryRun: c.dryRun,
		Force:  c.force,
	})
	if err != nil {
		log.Printf("Undo failed: %v", err)
		return subcommands.ExitFailure
	}

	if result.DryRun && !c.dryRun {
		fmt.Printf("Operation %s was NOT undone:\n", result.OperationID)
	} else if result.DryRun {
		fmt.Printf("Dry run for operation %s:\n", result.OperationID)
	} else {
		fmt.Printf("Undo of operation %s:\n", result.OperationID)
	}
	for _, file := range result.Files {
		switch file.Status {
		case history.UndoRestored:
			fmt.Printf("  restored %s\n", file.OriginalPath)
		case history.UndoSkipped:
			fmt.Printf("  skipped  %s (%s)\n", file.OriginalPath, file.Error)
		case history.UndoFailed:
			fmt.Printf("  failed   %s (%s)\n", file.OriginalPath, file.Error)
		}
	}
	for _, dir := range result.DirectoriesRemoved {
		fmt.Printf("  removed directory %s\n", dir)
	}
	fmt.Printf("%d restored, %d skipped, %d failed\n",
		result.FilesRestored, result.FilesSkipped, result.FilesFailed)

	if !result.Success || (result.DryRun && !c.dryRun) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
