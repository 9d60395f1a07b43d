package model

// Notifier defines a generic interface for forwarding derived KPI events to
// an external consumer (e.g. a message bus).
type Notifier interface {
	Notify(event KPIEvent) error
	Close()
}
