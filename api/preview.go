package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tidyfile/tidy/models"
	"github.com/tidyfile/tidy/preview"
	"github.com/tidyfile/tidy/scanner"
)

// GeneratePreview scans a directory on the server and returns the rename
// proposals the configured rules produce. Nothing is renamed.
func (h *Handler) GeneratePreview(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GeneratePreview")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Directory == "" {
		err := echo.NewHTTPError(http.StatusBadRequest, "Directory is required")
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.String("directory", req.Directory),
		attribute.Bool("recursive", req.Recursive),
	)

	files, err := scanner.Scan(ctx, req.Directory, scanner.Options{
		Recursive:     req.Recursive,
		IncludeHidden: req.IncludeHidden,
		Extensions:    req.Extensions,
	})
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to scan directory: "+err.Error())
	}
	span.SetAttributes(attribute.Int("files_scanned", len(files)))

	result, err := preview.Generate(ctx, files, map[string]*models.UnifiedMetadata{}, preview.Options{
		Rules:           h.cfg.RuleSet(),
		DateFormat:      h.cfg.Preferences.DateFormat,
		CaseStyle:       h.cfg.Preferences.CaseStyle,
		BaseDirectory:   req.BaseDirectory,
		CheckFileSystem: req.CheckFileSystem,
		LLMThreshold:    h.cfg.Preferences.LLMConfidenceThreshold,
	})
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Preview generation failed: "+err.Error())
	}
	span.SetAttributes(attribute.Int("proposals", len(result.Proposals)))
	return c.JSON(http.StatusOK, result)
}
