package migrate

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/tidyfile/tidy/db"
)

type Command struct {
	dbPath string
}

func (*Command) Name() string     { return "migrate" }
func (*Command) Synopsis() string { return "Run archive database migrations" }
func (*Command) Usage() string {
	return `migrate [-db <database>]:
  Run schema migrations on the sqlite history archive. Normally this happens
  automatically; the command exists for upgrading an archive in place.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "archive database path (default: platform config dir)")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dbPath := c.dbPath
	if dbPath == "" {
		defaultPath, err := db.DefaultArchivePath()
		if err != nil {
			log.Printf("Failed to resolve archive path: %v", err)
			return subcommands.ExitFailure
		}
		dbPath = defaultPath
	}

	log.Printf("Running archive migrations for %s...", dbPath)
	if err := db.RunMigrations(dbPath); err != nil {
		log.Printf("Failed to run migrations: %v", err)
		return subcommands.ExitFailure
	}
	log.Println("Archive migrations completed successfully")

	return subcommands.ExitSuccess
}
