package services

import (
	"github.com/logmirror/logmirror/internal/httpd/models"
	"github.com/logmirror/logmirror/internal/mirror"
)

// LogsService serves newest-first pages from the mirror's reversed file.
type LogsService struct {
	syncer *mirror.Syncer
}

func NewLogsService(syncer *mirror.Syncer) *LogsService {
	return &LogsService{syncer: syncer}
}

func (s *LogsService) ReadPage(page, size int) (*models.LogsPage, error) {
	p, err := s.syncer.ReadPage(page, size)
	if err != nil {
		return nil, err
	}

	return &models.LogsPage{
		Lines:      p.Lines,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalLines: p.TotalLines,
		HasMore:    p.HasMore,
	}, nil
}
