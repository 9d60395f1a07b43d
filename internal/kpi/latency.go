package kpi

import "context"

// LatencyJitter derives the windowed average (latency) and standard
// deviation (jitter) of the active-probe duration for one slice. The two
// queries are independent: each ok flag is false only when its own query
// yields no rows.
func (d *Deriver) LatencyJitter(ctx context.Context, snssai string) (latency float64, latencyOK bool, jitter float64, jitterOK bool) {
	if results := d.querier.Query(ctx, d.builder.ProbeLatency(snssai)); len(results) > 0 {
		latency, latencyOK = results[0].Value, true
	}
	if results := d.querier.Query(ctx, d.builder.ProbeJitter(snssai)); len(results) > 0 {
		jitter, jitterOK = results[0].Value, true
	}
	return latency, latencyOK, jitter, jitterOK
}
