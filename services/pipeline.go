package services

import (
	"context"
	"fmt"

	"delivery-insights/models"
	"delivery-insights/storage"
	"delivery-insights/utils"
)

// Pipeline loads and cleans a source, caching the cleaned table until the
// source identity changes.
type Pipeline struct {
	source  storage.RawSource
	cleaner *Cleaner
	logger  *utils.Logger

	identity string
	records  []*models.CleanRecord
	stats    models.DropStats
}

func NewPipeline(source storage.RawSource, cleaner *Cleaner, logger *utils.Logger) *Pipeline {
	return &Pipeline{source: source, cleaner: cleaner, logger: logger}
}

// Records returns the cleaned table and its drop counts, reloading only when
// the source has changed since the last call. Callers must not modify the
// returned records.
func (p *Pipeline) Records(ctx context.Context) ([]*models.CleanRecord, models.DropStats, error) {
	id, err := p.source.Identity(ctx)
	if err != nil {
		return nil, models.DropStats{}, err
	}
	if p.records != nil && id == p.identity {
		p.logger.Debug("[pipeline] Cache hit for %s", id)
		return p.records, p.stats, nil
	}

	raw, err := p.source.Load(ctx)
	if err != nil {
		return nil, models.DropStats{}, err
	}
	p.logger.Info("[pipeline] Loaded %d raw records", len(raw))

	records, stats, err := p.cleaner.Clean(raw)
	if err != nil {
		return nil, stats, fmt.Errorf("clean: %w", err)
	}

	p.identity, p.records, p.stats = id, records, stats
	return records, stats, nil
}
