package services

import (
	"context"

	"github.com/logmirror/logmirror/internal/httpd/models"
	"github.com/logmirror/logmirror/internal/mirror"
)

const historyTail = 10

// SyncService exposes manual cycle triggers and mirror status.
type SyncService struct {
	syncer  *mirror.Syncer
	journal *mirror.CycleJournal
}

func NewSyncService(syncer *mirror.Syncer, journal *mirror.CycleJournal) *SyncService {
	return &SyncService{
		syncer:  syncer,
		journal: journal,
	}
}

// TriggerCycle runs one sync cycle. Returns mirror.ErrCycleInProgress when
// one is already running.
func (s *SyncService) TriggerCycle(ctx context.Context) (*models.SyncTrigger, error) {
	res, err := s.syncer.RunCycle(ctx)
	if err != nil {
		return nil, err
	}

	return &models.SyncTrigger{
		Changed:    res.Changed,
		BytesMoved: res.BytesMoved,
		Anomaly:    res.Anomaly,
	}, nil
}

func (s *SyncService) GetStatus() (*models.SyncStatus, error) {
	st, err := s.syncer.Status()
	if err != nil {
		return nil, err
	}

	status := &models.SyncStatus{
		Key:       st.Key,
		Watermark: st.Watermark,
		Last:      st.LastResult,
		LastError: st.LastError,
	}

	if s.journal != nil {
		history, err := s.journal.Tail(historyTail)
		if err != nil {
			return nil, err
		}
		status.History = history
	}

	return status, nil
}
