package kpi

import (
	"context"

	"SliceScope/internal/model"
)

// PacketLoss derives the dropped-over-total packet ratio for one slice and
// direction. The second return value is false when the query yields no rows;
// a ratio of 0 with ok=true is a valid measurement, distinct from absent.
//
// When the query yields multiple rows only the first is used. This assumes a
// slice is served by a single UPF instance; with more than one the intended
// aggregation is undefined, so the extra rows are ignored rather than
// silently combined.
func (d *Deriver) PacketLoss(ctx context.Context, snssai string, direction model.Direction) (float64, bool) {
	expr, err := d.builder.PacketLossRatio(snssai, direction)
	if err != nil {
		d.log.Error().Err(err).Str("snssai", snssai).Msg("invalid packet loss direction")
		return 0, false
	}

	results := d.querier.Query(ctx, expr)
	if len(results) == 0 {
		return 0, false
	}
	if len(results) > 1 {
		d.log.Warn().Str("snssai", snssai).Int("rows", len(results)).
			Msg("packet loss query returned multiple instances, using the first")
	}
	return results[0].Value, true
}
