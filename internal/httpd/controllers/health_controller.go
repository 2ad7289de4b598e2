package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logmirror/logmirror/internal/httpd/services"
)

// HealthController handles health check requests.
type HealthController struct {
	healthService *services.HealthService
}

func NewHealthController(healthService *services.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.getHealth)
}

func (c *HealthController) getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.healthService.GetHealth())
}
