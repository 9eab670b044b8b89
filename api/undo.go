package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tidyfile/tidy/history"
)

// UndoOperation reverses a recorded operation.
func (h *Handler) UndoOperation(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "UndoOperation")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req UndoRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	span.SetAttributes(
		attribute.String("operation_id", req.OperationID),
		attribute.Bool("dry_run", req.DryRun),
		attribute.Bool("force", req.Force),
	)

	result, err := history.UndoOperation(h.history, req.OperationID, history.UndoOptions{
		DryRun: req.DryRun,
		Force:  req.Force,
	})
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, history.ErrNoHistory):
			return echo.NewHTTPError(http.StatusNotFound, "No operations in history")
		case errors.Is(err, history.ErrEntryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Operation not found")
		case errors.Is(err, history.ErrAlreadyUndone):
			return echo.NewHTTPError(http.StatusConflict, "Operation has already been undone")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Undo failed")
	}
	span.SetAttributes(
		attribute.Int("files_restored", result.FilesRestored),
		attribute.Int("files_failed", result.FilesFailed),
	)
	return c.JSON(http.StatusOK, result)
}

// RestoreFile moves a single file back to its original path.
func (h *Handler) RestoreFile(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "RestoreFile")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	var req RestoreRequest
	if err := c.Bind(&req); err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.FilePath == "" && req.OperationID == "" {
		err := echo.NewHTTPError(http.StatusBadRequest, "filePath or operationId is required")
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.String("file_path", req.FilePath),
		attribute.Bool("dry_run", req.DryRun),
	)

	result, err := history.RestoreFile(h.history, req.FilePath, history.RestoreOptions{
		DryRun:      req.DryRun,
		OperationID: req.OperationID,
		Lookup:      req.Lookup,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, history.ErrEntryNotFound) || errors.Is(err, history.ErrNoHistory) {
			return echo.NewHTTPError(http.StatusNotFound, "Operation not found")
		}
		if errors.Is(err, history.ErrAlreadyUndone) {
			return echo.NewHTTPError(http.StatusConflict, "Operation has already been undone")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Restore failed")
	}
	span.SetAttributes(attribute.Bool("success", result.Success))
	return c.JSON(http.StatusOK, result)
}
