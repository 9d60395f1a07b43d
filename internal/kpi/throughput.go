package kpi

import (
	"context"

	"SliceScope/internal/model"
)

// Throughput derives the per-session throughput of one slice in one traffic
// direction. It returns a map of SEID to bits/sec, one entry per result row;
// an unsupported direction or a failed query yields an empty map.
func (d *Deriver) Throughput(ctx context.Context, snssai string, direction model.Direction) map[string]float64 {
	throughputPerSeid := make(map[string]float64)

	expr, err := d.builder.SessionThroughput(snssai, direction)
	if err != nil {
		d.log.Error().Err(err).Str("snssai", snssai).Msg("invalid throughput direction")
		return throughputPerSeid
	}

	for _, r := range d.querier.Query(ctx, expr) {
		throughputPerSeid[r.Label("seid")] = r.Value
	}
	return throughputPerSeid
}
