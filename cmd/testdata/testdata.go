package testdata

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/subcommands"
)

type Command struct {
	outputDir string
}

func (*Command) Name() string     { return "testdata" }
func (*Command) Synopsis() string { return "Generate sample files for trying out renames" }
func (*Command) Usage() string {
	return `testdata -out <directory>:
  Generate a directory of sample files with the kinds of names a rename run
  encounters: camera dumps, screenshots, documents, and name collisions.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "out", "", "output directory path (required)")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.outputDir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	if err := generateTestData(c.outputDir); err != nil {
		log.Printf("Failed to generate test data: %v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func generateTestData(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	dirs := []string{
		"camera",
		"downloads",
		"docs",
		"docs/old",
	}
	for _, dir := range dirs {
		path := filepath.Join(outputDir, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	// names chosen to exercise rules, sanitization and conflict detection
	files := []struct {
		path    string
		content string
	}{
		{"camera/IMG_0001.jpg", "jpeg"},
		{"camera/IMG_0002.jpg", "jpeg"},
		{"camera/DSC04531.JPG", "jpeg"},
		{"camera/MVI_0004.mp4", "video"},
		{"downloads/Screenshot 2026-03-01 at 10.22.41.png", "png"},
		{"downloads/download (1).pdf", "pdf"},
		{"downloads/download (2).pdf", "pdf"},
		{"downloads/report:final?.txt", "text with invalid name characters"},
		{"docs/meeting notes.docx", "docx"},
		{"docs/old/CON.txt", "reserved device name"},
		{"docs/old/archive.tar.gz", "tarball"},
		{"docs/.hidden-notes.md", "hidden markdown"},
	}

	created := 0
	for _, file := range files {
		path := filepath.Join(outputDir, file.path)
		if err := os.WriteFile(path, []byte(file.content+"\n"), 0644); err != nil {
			// some of the names are intentionally hostile and may be
			// unrepresentable on this filesystem
			log.Printf("Skipping %s: %v", file.path, err)
			continue
		}
		created++
		// spread out modification times so {date} placeholders differ
		mtime := time.Now().Add(-time.Duration(created) * 24 * time.Hour)
		os.Chtimes(path, mtime, mtime)
	}

	log.Printf("Generated %d directories and %d files in %s", len(dirs), created, outputDir)
	return nil
}
