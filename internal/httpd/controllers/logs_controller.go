package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appErrors "github.com/logmirror/logmirror/internal/httpd/errors"
	"github.com/logmirror/logmirror/internal/httpd/services"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// LogsController serves paginated newest-first log reads.
type LogsController struct {
	logsService *services.LogsService
}

func NewLogsController(logsService *services.LogsService) *LogsController {
	return &LogsController{logsService: logsService}
}

func (c *LogsController) RegisterRoutes(router gin.IRouter) {
	router.GET("/logs", c.getLogs)
}

func (c *LogsController) getLogs(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		ctx.Error(appErrors.BadRequest("page must be a positive integer", err))
		return
	}

	size, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 || size > maxPageSize {
		ctx.Error(appErrors.BadRequest("limit must be between 1 and 1000", err))
		return
	}

	result, err := c.logsService.ReadPage(page, size)
	if err != nil {
		ctx.Error(appErrors.Internal("Failed to read log page", err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
