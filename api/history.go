package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tidyfile/tidy/history"
	"github.com/tidyfile/tidy/models"
)

// GetHistory returns recorded operations, newest first.
func (h *Handler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GetHistory")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	operationType := models.OperationType(c.QueryParam("type"))
	span.SetAttributes(attribute.String("operation_type", string(operationType)))

	entries, err := history.GetHistory(h.history, history.QueryOptions{Type: operationType})
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read history")
	}

	perPage := 100
	total := len(entries)
	page, err := h.getPageFromQuery(c, total, perPage)
	if err != nil {
		span.RecordError(err)
		return err
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, NewPaginatedResponse(c, entries[start:end], page, perPage, total))
}

// GetHistoryEntry returns a single operation by id, consulting the archive
// for entries pruned out of the JSON store.
func (h *Handler) GetHistoryEntry(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GetHistoryEntry")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	id := c.Param("id")
	if id == "" {
		err := echo.NewHTTPError(http.StatusBadRequest, "Operation id is required")
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.String("operation_id", id))

	entry, err := history.GetHistoryEntry(h.history, id)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read history")
	}
	if entry == nil && h.archive != nil {
		entry, err = h.archive.Get(id)
		if err != nil {
			span.RecordError(err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read archive")
		}
	}
	if entry == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Operation not found")
	}
	return c.JSON(http.StatusOK, entry)
}

// GetArchive returns entries pruned into the sqlite archive.
func (h *Handler) GetArchive(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GetArchive")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	if h.archive == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Archive is not configured")
	}

	limit, err := h.getLimitFromQuery(c)
	if err != nil {
		span.RecordError(err)
		return err
	}
	operationType := models.OperationType(c.QueryParam("type"))

	entries, err := h.archive.List(limit, operationType)
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read archive")
	}
	if entries == nil {
		entries = []models.OperationHistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// GetStats summarizes the history store and archive.
func (h *Handler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	tracer := otel.Tracer("api/handlers")
	ctx, span := tracer.Start(ctx, "GetStats")
	defer span.End()

	c.SetRequest(c.Request().WithContext(ctx))

	store, err := h.history.Load()
	if err != nil {
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read history")
	}
	stats := StatsResponse{
		HistoryEntries: len(store.Entries),
		LastPruned:     store.LastPruned,
	}
	if h.archive != nil {
		n, err := h.archive.Count()
		if err != nil {
			span.RecordError(err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count archive")
		}
		stats.ArchivedEntries = n
	}
	span.SetAttributes(
		attribute.Int("history_entries", stats.HistoryEntries),
		attribute.Int("archived_entries", stats.ArchivedEntries),
	)
	return c.JSON(http.StatusOK, stats)
}
