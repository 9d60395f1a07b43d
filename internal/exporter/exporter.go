package exporter

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"SliceScope/internal/model"
)

// Exporter owns the slice KPI gauges on an explicitly constructed registry.
// Publishing overwrites the previous value for the same label combination;
// label combinations are never deleted, so a slice that goes inactive keeps
// its last-published value until the process restarts.
type Exporter struct {
	registry *prometheus.Registry

	throughput *prometheus.GaugeVec
	packetLoss *prometheus.GaugeVec
	latency    *prometheus.GaugeVec
	jitter     *prometheus.GaugeVec

	log zerolog.Logger
}

// New creates an Exporter with its own registry. Process and runtime
// collectors are deliberately not registered; the endpoint serves slice KPIs
// only.
func New(log zerolog.Logger) *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slice_throughput",
			Help: "throughput per slice (bits/sec)",
		}, []string{"snssai", "seid", "direction"}),
		packetLoss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slice_packet_loss_ratio",
			Help: "packet loss ratio per slice",
		}, []string{"snssai", "direction"}),
		latency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slice_latency_seconds",
			Help: "average latency per slice",
		}, []string{"snssai"}),
		jitter: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slice_jitter_seconds",
			Help: "jitter per slice",
		}, []string{"snssai"}),
		log: log.With().Str("component", "exporter").Logger(),
	}
	e.registry.MustRegister(e.throughput, e.packetLoss, e.latency, e.jitter)
	return e
}

// Handler returns the scrape handler rendering the registry in the text
// exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// PublishThroughput sets the throughput gauge for one session endpoint. The
// gauge carries the raw bits/sec value; the Mbps figure appears only in the
// log line.
func (e *Exporter) PublishThroughput(snssai, seid string, direction model.Direction, bps float64) {
	e.log.Info().
		Str("snssai", snssai).
		Str("seid", seid).
		Str("direction", string(direction)).
		Float64("rate_mbps", roundMbps(bps)).
		Msg("slice throughput")
	e.throughput.WithLabelValues(snssai, seid, string(direction)).Set(bps)
}

// PublishPacketLoss sets the packet-loss ratio gauge for one slice and direction.
func (e *Exporter) PublishPacketLoss(snssai string, direction model.Direction, ratio float64) {
	e.log.Info().
		Str("snssai", snssai).
		Str("direction", string(direction)).
		Float64("pkt_loss_ratio", ratio).
		Msg("slice packet loss")
	e.packetLoss.WithLabelValues(snssai, string(direction)).Set(ratio)
}

// PublishLatencyJitter sets the latency and jitter gauges for one slice.
func (e *Exporter) PublishLatencyJitter(snssai string, latency, jitter float64) {
	e.log.Info().
		Str("snssai", snssai).
		Float64("latency_seconds", latency).
		Float64("jitter_seconds", jitter).
		Msg("slice latency and jitter")
	e.latency.WithLabelValues(snssai).Set(latency)
	e.jitter.WithLabelValues(snssai).Set(jitter)
}

// roundMbps converts bits/sec to Mbps rounded to six decimal places, for
// human-readable logging only.
func roundMbps(bps float64) float64 {
	const mega = 1e6
	return math.Round(bps/mega*mega) / mega
}
