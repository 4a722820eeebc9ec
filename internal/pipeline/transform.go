package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

// SurgeTransformer implements Transformer by parsing a station pair message
// and running domain.Verify on it.
type SurgeTransformer struct {
	opts   domain.Options
	logger *slog.Logger
}

// NewTransformer creates a SurgeTransformer with the given verification options.
func NewTransformer(opts domain.Options, logger *slog.Logger) *SurgeTransformer {
	return &SurgeTransformer{
		opts:   opts,
		logger: logger,
	}
}

func (t *SurgeTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.VerificationResult, error) {
	pair, err := domain.ParseStationPair(raw)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	res, err := domain.Verify(pair, t.opts)
	if err != nil {
		return domain.VerificationResult{}, err
	}

	t.logger.Debug("station verified",
		"station_id", res.Station.ID,
		"cycle", res.Cycle,
		"cycle_date", res.CycleDate,
		"available", res.Available,
		"sample_count", res.SampleCount,
	)
	return res, nil
}
