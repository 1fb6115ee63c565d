package repository

import (
	"context"
	"fmt"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileFlightEventRepository appends one plain text line per event to a file
type FileFlightEventRepository struct {
	logger *zap.Logger
	close  func()
}

var _ repository.FlightEventRepository = (*FileFlightEventRepository)(nil)

// NewFileFlightEventRepository opens path for appending, creating it if needed
func NewFileFlightEventRepository(path string) (*FileFlightEventRepository, error) {
	sink, closeFn, err := zap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open action log %s: %w", path, err)
	}

	// Message only: the file keeps the bare action lines.
	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "message",
		LineEnding: zapcore.DefaultLineEnding,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zapcore.InfoLevel)

	return &FileFlightEventRepository{
		logger: zap.New(core),
		close:  closeFn,
	}, nil
}

// Append writes the event message as a single line
func (r *FileFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	r.logger.Info(event.Message)
	if err := r.logger.Sync(); err != nil {
		return fmt.Errorf("failed to sync action log: %w", err)
	}
	return nil
}

// Close releases the underlying file
func (r *FileFlightEventRepository) Close() {
	r.close()
}
