package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// SyncDataInput contains the parameters for syncing.
type SyncDataInput struct{}

// SyncDataOutput contains the result of a sync.
type SyncDataOutput struct {
	SyncedAt time.Time
	Pushed   bool // False when the backend has nothing to push to
}

// SyncData pushes the store to its remote when cloud_sync is enabled.
// Only the git backend has a remote; other backends just record the sync time.
type SyncData struct {
	syncer   domain.Syncer // nil when the backend cannot sync
	settings *store.SettingsStore
	clock    domain.Clock
	logger   domain.Logger
}

// NewSyncData creates a new SyncData use case.
func NewSyncData(syncer domain.Syncer, settings *store.SettingsStore, clock domain.Clock, logger domain.Logger) *SyncData {
	return &SyncData{syncer: syncer, settings: settings, clock: clock, logger: logger}
}

// Execute pushes and updates last_sync.
func (uc *SyncData) Execute(_ context.Context, _ SyncDataInput) (*SyncDataOutput, error) {
	if !uc.settings.CloudSync() {
		return nil, domain.ErrSyncDisabled
	}

	out := &SyncDataOutput{}
	if uc.syncer != nil {
		if err := uc.syncer.Push(); err != nil {
			uc.logger.Error(logCategory, err.Error())
			return nil, fmt.Errorf("sync: %w", err)
		}
		out.Pushed = true
	}

	out.SyncedAt = uc.clock.Now()
	if err := uc.settings.SetLastSync(out.SyncedAt); err != nil {
		return nil, err
	}
	uc.logger.Info(logCategory, "sync completed")
	return out, nil
}
