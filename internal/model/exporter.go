package model

// Exporter defines a generic interface for publishing derived KPI values as
// labeled gauges. Publishing overwrites the previous value for the same label
// combination and never fails.
type Exporter interface {
	// PublishThroughput sets the throughput gauge for one session endpoint,
	// in raw bits/sec.
	PublishThroughput(snssai, seid string, direction Direction, bps float64)

	// PublishPacketLoss sets the packet-loss ratio gauge for one slice and direction.
	PublishPacketLoss(snssai string, direction Direction, ratio float64)

	// PublishLatencyJitter sets both the latency and jitter gauges for one slice.
	// The two values are always published together.
	PublishLatencyJitter(snssai string, latency, jitter float64)
}
