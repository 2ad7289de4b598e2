package services

import (
	"time"

	"github.com/logmirror/logmirror/internal/httpd/models"
	"github.com/logmirror/logmirror/internal/version"
)

// HealthService reports process liveness.
type HealthService struct{}

func NewHealthService() *HealthService {
	return &HealthService{}
}

func (s *HealthService) GetHealth() *models.Health {
	return &models.Health{
		Status:    "healthy",
		Version:   version.Short(),
		Timestamp: time.Now().UTC(),
	}
}
