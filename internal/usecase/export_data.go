package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// ExportDataInput contains the parameters for exporting activities.
type ExportDataInput struct {
	Dir    string // Destination directory (empty = current directory)
	Format string // "json" (default) or "yaml"
}

// ExportDataOutput contains the result of an export.
type ExportDataOutput struct {
	Path  string // Written file
	Count int    // Exported activities
}

// ExportData is the use case for writing a backup file.
type ExportData struct {
	activities *store.ActivityStore
	clock      domain.Clock
	logger     domain.Logger
}

// NewExportData creates a new ExportData use case.
func NewExportData(activities *store.ActivityStore, clock domain.Clock, logger domain.Logger) *ExportData {
	return &ExportData{activities: activities, clock: clock, logger: logger}
}

// Execute writes present_tense_backup_<unix>.<format> into the directory.
func (uc *ExportData) Execute(_ context.Context, in ExportDataInput) (*ExportDataOutput, error) {
	format := in.Format
	if format == "" {
		format = domain.FormatJSON
	}
	if format != domain.FormatJSON && format != domain.FormatYAML {
		return nil, fmt.Errorf("unsupported export format %q (want json or yaml)", format)
	}

	data, count, err := uc.activities.Export(format)
	if err != nil {
		return nil, fmt.Errorf("encode activities: %w", err)
	}

	dir := in.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, domain.ExportFileName(uc.clock.Now(), format))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write export file: %w", err)
	}

	uc.logger.Info(logCategory, fmt.Sprintf("exported %d activities to %s", count, path))
	return &ExportDataOutput{Path: path, Count: count}, nil
}
