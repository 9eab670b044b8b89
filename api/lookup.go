package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tidyfile/tidy/history"
)

// LookupFile returns the rename trail of a single file.
func (h *Handler) LookupFile(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "LookupFile")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	path := c.QueryParam("path")
	if path == "" {
		err := echo.NewHTTPError(http.StatusBadRequest, "Path parameter is required")
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.String("path", path))

	fileHistory, err := history.LookupFileHistory(h.history, path)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read history")
	}
	if fileHistory == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No history found for file")
	}
	span.SetAttributes(
		attribute.Int("operations", len(fileHistory.Operations)),
		attribute.Bool("is_at_original", fileHistory.IsAtOriginal),
	)
	return c.JSON(http.StatusOK, fileHistory)
}
