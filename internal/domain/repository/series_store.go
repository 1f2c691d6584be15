package repository

import (
	"context"

	"SignalDesk/internal/domain/models"
)

// SeriesStore provides read-only access to per-symbol daily close series.
// Implementations must return strictly increasing, gap-filtered,
// split-adjusted series; the engine consumes them as-is.
type SeriesStore interface {
	GetDailySeries(ctx context.Context, symbol string) (models.PriceSeries, error)
}
