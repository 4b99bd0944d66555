package services

import (
	"context"

	"github.com/vytor/palabras/internal/errors"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/report"
	"github.com/vytor/palabras/internal/storage"
)

// DataService moves the learner's whole state in and out of the store.
type DataService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) error
	Reset(ctx context.Context) error
	Report(ctx context.Context) ([]byte, error)
}

type dataService struct {
	store ProgressStore
}

// NewDataService creates a new DataService
func NewDataService(store ProgressStore) DataService {
	return &dataService{store: store}
}

func (s *dataService) Export(ctx context.Context) ([]byte, error) {
	data, err := s.store.ExportAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to export progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return data, nil
}

// Import replaces all progress with an exported document. The document is
// validated first so a malformed upload is reported as a bad request.
func (s *dataService) Import(ctx context.Context, data []byte) error {
	log := logger.FromContext(ctx)

	if len(data) == 0 {
		return errors.NewBadRequestError("import document is empty")
	}
	if _, err := storage.DecodeExport(data); err != nil {
		log.Warn("rejected import: %v", err)
		return errors.NewBadRequestError("invalid import document: " + err.Error())
	}
	if !s.store.ImportAll(ctx, data) {
		return errors.NewInternalError(nil)
	}
	log.Info("progress imported")
	return nil
}

func (s *dataService) Reset(ctx context.Context) error {
	if !s.store.ResetAll(ctx) {
		return errors.NewInternalError(nil)
	}
	logger.FromContext(ctx).Info("progress reset")
	return nil
}

// Report renders the current progress as an .xlsx workbook.
func (s *dataService) Report(ctx context.Context) ([]byte, error) {
	snap := s.store.Load(ctx)
	data, err := report.ProgressXLSX(snap.Profile, snap.History)
	if err != nil {
		logger.FromContext(ctx).Error("failed to build progress report: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return data, nil
}
