package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/tidyfile/tidy/cmd/apply"
	exportcmd "github.com/tidyfile/tidy/cmd/export"
	historycmd "github.com/tidyfile/tidy/cmd/history"
	"github.com/tidyfile/tidy/cmd/lookup"
	"github.com/tidyfile/tidy/cmd/migrate"
	previewcmd "github.com/tidyfile/tidy/cmd/preview"
	"github.com/tidyfile/tidy/cmd/prune"
	"github.com/tidyfile/tidy/cmd/restore"
	"github.com/tidyfile/tidy/cmd/scan"
	"github.com/tidyfile/tidy/cmd/serve"
	"github.com/tidyfile/tidy/cmd/testdata"
	"github.com/tidyfile/tidy/cmd/undo"
	"github.com/tidyfile/tidy/cmd/version"
)

// initTracer initializes the OpenTelemetry tracer provider
func initTracer() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("tidy"),
		semconv.ServiceVersion("1.0.0"),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

func main() {
	tp, err := initTracer()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	// Register subcommands
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&scan.Command{}, "")
	subcommands.Register(&previewcmd.Command{}, "")
	subcommands.Register(&apply.Command{}, "")
	subcommands.Register(&exportcmd.Command{}, "")
	subcommands.Register(&historycmd.Command{}, "")
	subcommands.Register(&lookup.Command{}, "")
	subcommands.Register(&undo.Command{}, "")
	subcommands.Register(&restore.Command{}, "")
	subcommands.Register(&prune.Command{}, "")
	subcommands.Register(&migrate.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&testdata.Command{}, "")
	subcommands.Register(&version.Command{}, "")

	// Set the default subcommand to help if no subcommand is specified
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	// Execute the specified subcommand
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
