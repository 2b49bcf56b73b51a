// Package importer loads scraped trainee and support records into the record database.
package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/umacareer/internal/game/support"
	"github.com/cory-johannsen/umacareer/internal/game/trainee"
)

// Sink receives validated records.
type Sink interface {
	PutTrainee(ctx context.Context, rec trainee.Record) error
	PutSupport(ctx context.Context, rec support.Record) error
}

// Stats counts the records written by one Run.
type Stats struct {
	Trainees int
	Supports int
}

// validationEnergy is the max energy trainee records are validated against.
const validationEnergy = 100

// Importer orchestrates record import from a Source to a Sink.
type Importer struct {
	source Source
	sink   Sink
	logger *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source, sink, and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, sink Sink, logger *zap.Logger) *Importer {
	return &Importer{source: source, sink: sink, logger: logger}
}

// Run loads records from sourceDir, validates each, and writes them to the sink.
// Every record is validated before any is written.
//
// Postcondition: either every loaded record is written or an error is returned;
// a validation failure writes nothing.
func (imp *Importer) Run(ctx context.Context, sourceDir string) (Stats, error) {
	overall := time.Now()

	bundle, err := imp.source.Load(sourceDir)
	if err != nil {
		return Stats{}, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("records loaded",
		zap.Int("trainees", len(bundle.Trainees)),
		zap.Int("supports", len(bundle.Supports)),
		zap.Duration("elapsed", time.Since(overall)),
	)

	for i, rec := range bundle.Trainees {
		if _, err := trainee.New(rec, validationEnergy); err != nil {
			return Stats{}, fmt.Errorf("trainee record %d failed validation: %w", i, err)
		}
	}
	for i, rec := range bundle.Supports {
		if _, err := support.New(rec, 1); err != nil {
			return Stats{}, fmt.Errorf("support record %d failed validation: %w", i, err)
		}
	}

	var stats Stats
	for _, rec := range bundle.Trainees {
		if err := imp.sink.PutTrainee(ctx, rec); err != nil {
			return stats, fmt.Errorf("writing trainee %d: %w", *rec.CardID, err)
		}
		stats.Trainees++
	}
	for _, rec := range bundle.Supports {
		if err := imp.sink.PutSupport(ctx, rec); err != nil {
			return stats, fmt.Errorf("writing support %d: %w", *rec.SupportID, err)
		}
		stats.Supports++
	}

	imp.logger.Info("import complete",
		zap.Int("trainees", stats.Trainees),
		zap.Int("supports", stats.Supports),
		zap.Duration("elapsed", time.Since(overall)),
	)
	return stats, nil
}
