package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appErrors "github.com/logmirror/logmirror/internal/httpd/errors"
	"github.com/logmirror/logmirror/internal/httpd/services"
	"github.com/logmirror/logmirror/internal/mirror"
)

// SyncController exposes manual sync triggers and mirror status.
type SyncController struct {
	syncService *services.SyncService
}

func NewSyncController(syncService *services.SyncService) *SyncController {
	return &SyncController{syncService: syncService}
}

func (c *SyncController) RegisterRoutes(router gin.IRouter) {
	router.POST("/sync", c.triggerSync)
	router.GET("/sync/status", c.getStatus)
}

func (c *SyncController) triggerSync(ctx *gin.Context) {
	result, err := c.syncService.TriggerCycle(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, mirror.ErrCycleInProgress) {
			// contention, not failure; the caller should try again later
			ctx.Error(appErrors.Conflict("cycle_in_progress", "a sync cycle is already running"))
			return
		}
		ctx.Error(appErrors.Internal("Sync cycle failed", err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *SyncController) getStatus(ctx *gin.Context) {
	status, err := c.syncService.GetStatus()
	if err != nil {
		ctx.Error(appErrors.Internal("Failed to read sync status", err))
		return
	}

	ctx.JSON(http.StatusOK, status)
}
