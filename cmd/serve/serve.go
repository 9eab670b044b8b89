package serve

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/google/subcommands"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tidyfile/tidy/api"
	"github.com/tidyfile/tidy/app"
)

type Command struct {
	configPath  string
	historyPath string
	archivePath string
	noArchive   bool
	port        string
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Start HTTP server exposing preview, history and undo" }
func (*Command) Usage() string {
	return `serve [-config <file>] [-history <file>] [-archive-db <file>] [-port <port>]:
  Start an HTTP server that provides REST API access to preview generation,
  the operation history, file lookup, undo and restore.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default: platform config dir)")
	f.StringVar(&c.historyPath, "history", "", "history file path (default: platform config dir)")
	f.StringVar(&c.archivePath, "archive-db", "", "archive database path (default: platform config dir)")
	f.BoolVar(&c.noArchive, "no-archive", false, "serve without the sqlite archive")
	f.StringVar(&c.port, "port", "8080", "port to listen on")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	if err := appCtx.LoadConfig(c.configPath); err != nil {
		log.Printf("Failed to load config: %v", err)
		return subcommands.ExitFailure
	}
	if err := appCtx.OpenHistory(c.historyPath); err != nil {
		log.Printf("Failed to open history: %v", err)
		return subcommands.ExitFailure
	}
	if !c.noArchive {
		if err := appCtx.OpenArchive(c.archivePath); err != nil {
			log.Printf("Failed to open archive: %v", err)
			return subcommands.ExitFailure
		}
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Create handler
	h := api.NewHandler(appCtx.History, appCtx.Archive, appCtx.Config)

	// Routes
	e.GET("/api/history", h.GetHistory)
	e.GET("/api/history/:id", h.GetHistoryEntry)
	e.GET("/api/archive", h.GetArchive)
	e.GET("/api/lookup", h.LookupFile)
	e.GET("/api/stats", h.GetStats)
	e.POST("/api/preview", h.GeneratePreview)
	e.POST("/api/undo", h.UndoOperation)
	e.POST("/api/restore", h.RestoreFile)

	// Start server
	log.Printf("Starting server on port %s...", c.port)
	if err := e.Start(":" + c.port); err != nil && err != http.ErrServerClosed {
		log.Printf("Failed to start server: %v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
