package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/store"
)

// ImportDataInput contains the parameters for importing activities.
type ImportDataInput struct {
	Path string // Backup file (required)
}

// ImportDataOutput contains the result of an import.
type ImportDataOutput struct {
	Imported int // Activities now in the collection
	Replaced int // Activities that were discarded
}

// ImportData is the use case for restoring a backup file.
// The whole collection is replaced; a file that fails to decode leaves it untouched.
type ImportData struct {
	activities *store.ActivityStore
	logger     domain.Logger
}

// NewImportData creates a new ImportData use case.
func NewImportData(activities *store.ActivityStore, logger domain.Logger) *ImportData {
	return &ImportData{activities: activities, logger: logger}
}

// Execute decodes the file and replaces the collection.
func (uc *ImportData) Execute(_ context.Context, in ImportDataInput) (*ImportDataOutput, error) {
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	list, err := domain.DecodeActivities(data, domain.FormatForPath(in.Path), in.Path)
	if err != nil {
		uc.logger.Error(logCategory, err.Error())
		return nil, err
	}

	previous := uc.activities.Len()
	if err := uc.activities.Replace(list); err != nil {
		return nil, err
	}

	uc.logger.Info(logCategory, fmt.Sprintf("imported %d activities from %s", len(list), in.Path))
	return &ImportDataOutput{Imported: len(list), Replaced: previous}, nil
}
