package query

import (
	"fmt"
	"strings"

	"SliceScope/internal/model"
)

// Metric names scraped from the 5G core and the active-probing subsystem.
const (
	metricSessionRate  = "fivegs_smffunction_sm_seid_session"
	metricAssociation  = "upf_smf_association"
	metricProbe        = "probe_duration_seconds"
	metricVolumePrefix = "fivegs_ep_n3_gtp_"
)

// volumeMetricByDirection maps a traffic direction to the per-SEID N3 data
// volume counter. Uplink traffic leaves the UPF on N3, downlink enters it.
var volumeMetricByDirection = map[model.Direction]string{
	model.DirectionUplink:   "outdatavolumen3upf",
	model.DirectionDownlink: "indatavolumen3upf",
}

var packetMetricsByDirection = map[model.Direction]struct{ total, dropped string }{
	model.DirectionUplink:   {total: "ul_packets_total", dropped: "ul_packets_dropped_total"},
	model.DirectionDownlink: {total: "dl_packets_total", dropped: "dl_packets_dropped_total"},
}

// Builder renders the backend query expressions used by the KPI derivers.
// It carries the configured time window so derivation logic stays free of
// backend-dialect concerns.
type Builder struct {
	// Window is the range selector applied to every rate/aggregate, e.g. "5s".
	Window string
}

// NewBuilder creates a Builder for the given query window.
func NewBuilder(window string) Builder {
	return Builder{Window: window}
}

// SliceActivity returns the expression listing session-creation rate per
// slice; its result rows carry one "snssai" label each.
func (b Builder) SliceActivity() string {
	return fmt.Sprintf("sum by (snssai) (rate(%s[%s]))", metricSessionRate, b.Window)
}

// SessionThroughput returns the per-SEID throughput expression for one slice
// and direction, in bits/sec. The data-volume rate is joined on seid with the
// slice's session set so only traffic belonging to the slice is counted, and
// scaled by 8 to convert bytes/sec to bits/sec.
func (b Builder) SessionThroughput(snssai string, direction model.Direction) (string, error) {
	volume, ok := volumeMetricByDirection[direction]
	if !ok {
		return "", fmt.Errorf("unsupported direction %q", direction)
	}
	expr := fmt.Sprintf(
		`sum by (seid) (rate(%s%s_seid[%s]) * on (seid) group_right sum(%s{snssai="%s"}) by (seid, snssai)) * 8`,
		metricVolumePrefix, volume, b.Window, metricSessionRate, snssai,
	)
	return expr, nil
}

// PacketLossRatio returns the dropped-over-total packet rate expression for
// one slice and direction. Both rates are restricted to UPF instances
// associated with the slice via the association metric, and divided on the
// shared instance label.
func (b Builder) PacketLossRatio(snssai string, direction model.Direction) (string, error) {
	metrics, ok := packetMetricsByDirection[direction]
	if !ok {
		return "", fmt.Errorf("unsupported direction %q", direction)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `(sum(rate(%s%s[%s])) by (instance) `, metricVolumePrefix, metrics.dropped, b.Window)
	fmt.Fprintf(&sb, `and on(instance) sum(%s{snssai="%s"}) by (instance))`, metricAssociation, snssai)
	fmt.Fprintf(&sb, ` / on(instance) `)
	fmt.Fprintf(&sb, `(sum(rate(%s%s[%s])) by (instance) `, metricVolumePrefix, metrics.total, b.Window)
	fmt.Fprintf(&sb, `and on(instance) sum(%s{snssai="%s"}) by (instance))`, metricAssociation, snssai)
	return sb.String(), nil
}

// ProbeLatency returns the windowed average of the probe duration for one
// slice.
func (b Builder) ProbeLatency(snssai string) string {
	return fmt.Sprintf(`avg_over_time(%s{slice_id="%s"}[%s])`, metricProbe, ProbeSliceLabel(snssai), b.Window)
}

// ProbeJitter returns the windowed standard deviation of the probe duration
// for one slice.
func (b Builder) ProbeJitter(snssai string) string {
	return fmt.Sprintf(`stddev_over_time(%s{slice_id="%s"}[%s])`, metricProbe, ProbeSliceLabel(snssai), b.Window)
}

// ProbeSliceLabel translates a slice identifier into the probing subsystem's
// label convention, which cannot carry the S-NSSAI separator.
func ProbeSliceLabel(snssai string) string {
	return strings.ReplaceAll(snssai, "-", "_")
}
