package storage

import (
	"context"

	"delivery-insights/models"
)

// RawSource is the interface any input backend must satisfy.
type RawSource interface {
	// Load returns every row of the source in input order.
	Load(ctx context.Context) ([]*models.RawRecord, error)
	// Identity changes whenever the underlying data may have changed.
	Identity(ctx context.Context) (string, error)
	Close() error
}

// TableWriter is the interface for exporting rendered report tables.
type TableWriter interface {
	Write(tables []models.Table) error
	Close() error
}
