package handler

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/todolist/internal/service/serviceutils"
	"github.com/locvowork/todolist/internal/session"
	"github.com/locvowork/todolist/pkg/simpleexcel"
)

// DefaultExportLayout is used unless EXPORT_LAYOUT_FILE points elsewhere. Its
// section id must be "tasks".
//
//go:embed task_export.yaml
var DefaultExportLayout string

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles GET /tasks/export?format=xlsx|csv
func (h *TaskHandler) ExportHandler(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Unsupported export format.")
	}

	tasks, err := h.tasks.List(c.Request().Context(), session.UserID(c))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error exporting tasks.", err)
	}

	exporter, err := simpleexcel.NewDataExporterFromYamlConfig(h.exportLayout)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error exporting tasks.", err)
	}
	exporter.BindSectionData("tasks", tasks)

	filename := fmt.Sprintf("tasks_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	if format == "csv" {
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		return exporter.ToCSV(c.Response())
	}

	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return exporter.ToWriter(c.Response())
}
