package kpi

import "context"

// ActiveSlices returns the distinct slice identifiers with recent session
// activity. An empty slice means no activity or a failed query; the caller
// decides how loudly to report that.
func (d *Deriver) ActiveSlices(ctx context.Context) []string {
	results := d.querier.Query(ctx, d.builder.SliceActivity())

	var snssais []string
	for _, r := range results {
		if snssai := r.Label("snssai"); snssai != "" {
			snssais = append(snssais, snssai)
		}
	}
	return snssais
}
