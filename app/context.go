// Package app carries the shared run state for the subcommands: the loaded
// config, the history storage, the optional archive handle, and a cancellable
// context with once-only cleanup for signal handling.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tidyfile/tidy/config"
	"github.com/tidyfile/tidy/db"
	"github.com/tidyfile/tidy/history"
	"github.com/tidyfile/tidy/models"
)

type AppContext struct {
	Config  *config.AppConfig
	History *history.Storage
	Archive *db.Archive
	Stats   *models.ProgressStats
	Context context.Context
	Cancel  context.CancelFunc
	Cleanup sync.Once
}

func NewAppContext(parentCtx context.Context) *AppContext {
	ctx, cancel := context.WithCancel(parentCtx)
	return &AppContext{
		Context: ctx,
		Cancel:  cancel,
		Stats:   NewProgressStats(),
	}
}

func NewProgressStats() *models.ProgressStats {
	now := time.Now()
	return &models.ProgressStats{
		StartTime:   now,
		LastLogTime: now,
	}
}

// LoadConfig loads the config file, falling back to the default path when
// path is empty.
func (app *AppContext) LoadConfig(path string) error {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	app.Config = cfg
	return nil
}

// OpenHistory sets up history storage, falling back to the default path when
// path is empty.
func (app *AppContext) OpenHistory(path string) error {
	if path == "" {
		defaultPath, err := history.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}
	app.History = history.NewStorage(path)
	return nil
}

// OpenArchive opens the sqlite archive, falling back to the default path when
// path is empty.
func (app *AppContext) OpenArchive(path string) error {
	if path == "" {
		defaultPath, err := db.DefaultArchivePath()
		if err != nil {
			return err
		}
		path = defaultPath
	}
	archive, err := db.OpenArchive(path)
	if err != nil {
		return err
	}
	app.Archive = archive
	return nil
}

func (app *AppContext) PerformCleanup() {
	app.Cleanup.Do(func() {
		if app.Archive != nil {
			if err := app.Archive.Close(); err != nil {
				log.Printf("Error closing archive: %v", err)
			}
		}
	})
}
