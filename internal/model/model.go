package model

import "time"

// Direction is the traffic flow orientation of a slice-level metric.
type Direction string

const (
	DirectionUplink   Direction = "uplink"
	DirectionDownlink Direction = "downlink"
)

// Directions lists the supported traffic directions, in the order they are
// collected each cycle.
var Directions = []Direction{DirectionUplink, DirectionDownlink}

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	return d == DirectionUplink || d == DirectionDownlink
}

// Sample is a single (label-set, value) row of an instant query result.
type Sample struct {
	Labels map[string]string
	Value  float64
}

// Label returns the value of the named label, or "" if absent.
func (s Sample) Label(name string) string {
	return s.Labels[name]
}

// KPIKind identifies which slice KPI a derived value belongs to.
type KPIKind string

const (
	KPIThroughput KPIKind = "throughput_bps"
	KPIPacketLoss KPIKind = "packet_loss_ratio"
	KPILatency    KPIKind = "latency_seconds"
	KPIJitter     KPIKind = "jitter_seconds"
)

// KPIEvent is a single derived KPI value tagged with the entity it describes.
// Events are produced fresh each collection cycle and carry no history.
type KPIEvent struct {
	Kind      KPIKind   `json:"kind"`
	Snssai    string    `json:"snssai"`
	Seid      string    `json:"seid,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}
