package collector

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"SliceScope/internal/kpi"
	"SliceScope/internal/model"
)

// Collector drives the periodic KPI collection cycle: discover the active
// slices, derive each KPI per slice (and per direction where applicable) and
// publish the results. Cycles run strictly one at a time; no state survives
// from one cycle to the next.
type Collector struct {
	deriver  *kpi.Deriver
	exporter model.Exporter
	notifier model.Notifier // optional, may be nil
	period   time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	log      zerolog.Logger
}

// New creates a Collector. notifier may be nil, in which case no KPI events
// are forwarded.
func New(deriver *kpi.Deriver, exporter model.Exporter, notifier model.Notifier, period time.Duration, log zerolog.Logger) *Collector {
	return &Collector{
		deriver:  deriver,
		exporter: exporter,
		notifier: notifier,
		period:   period,
		stopChan: make(chan struct{}),
		log:      log.With().Str("component", "collector").Logger(),
	}
}

// Start begins the periodic collection loop in its own goroutine. The first
// cycle runs immediately; subsequent cycles run once per period.
func (c *Collector) Start() {
	c.log.Info().Dur("period", c.period).Msg("collector started")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(c.period)
		defer ticker.Stop()

		c.runCycle(context.Background())
		for {
			select {
			case <-ticker.C:
				c.runCycle(context.Background())
			case <-c.stopChan:
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for any in-flight cycle to finish.
func (c *Collector) Stop() {
	c.log.Info().Msg("stopping collector...")
	close(c.stopChan)
	c.wg.Wait()
	c.log.Info().Msg("collector stopped")
}

// runCycle executes one collect-and-export cycle. The whole body sits behind
// a recover boundary: one bad cycle is logged and the loop waits for the next
// tick.
func (c *Collector) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("KPI computation cycle failed")
		}
	}()

	snssais := c.deriver.ActiveSlices(ctx)
	if len(snssais) == 0 {
		c.log.Warn().Msg("no active slices found")
		return
	}
	c.log.Debug().Strs("snssais", snssais).Msg("active slices")

	for _, snssai := range snssais {
		c.collectThroughput(ctx, snssai)
		c.collectPacketLoss(ctx, snssai)
		c.collectLatencyJitter(ctx, snssai)
	}
}

func (c *Collector) collectThroughput(ctx context.Context, snssai string) {
	for _, direction := range model.Directions {
		for seid, bps := range c.deriver.Throughput(ctx, snssai, direction) {
			c.exporter.PublishThroughput(snssai, seid, direction, bps)
			c.notify(model.KPIEvent{
				Kind:      model.KPIThroughput,
				Snssai:    snssai,
				Seid:      seid,
				Direction: direction,
				Value:     bps,
			})
		}
	}
}

func (c *Collector) collectPacketLoss(ctx context.Context, snssai string) {
	for _, direction := range model.Directions {
		ratio, ok := c.deriver.PacketLoss(ctx, snssai, direction)
		if !ok {
			continue
		}
		c.exporter.PublishPacketLoss(snssai, direction, ratio)
		c.notify(model.KPIEvent{
			Kind:      model.KPIPacketLoss,
			Snssai:    snssai,
			Direction: direction,
			Value:     ratio,
		})
	}
}

func (c *Collector) collectLatencyJitter(ctx context.Context, snssai string) {
	latency, latencyOK, jitter, jitterOK := c.deriver.LatencyJitter(ctx, snssai)
	// Latency and jitter are exported as a pair; one without the other is
	// dropped for this cycle.
	if !latencyOK || !jitterOK {
		return
	}
	c.exporter.PublishLatencyJitter(snssai, latency, jitter)
	c.notify(model.KPIEvent{Kind: model.KPILatency, Snssai: snssai, Value: latency})
	c.notify(model.KPIEvent{Kind: model.KPIJitter, Snssai: snssai, Value: jitter})
}

// notify forwards one event to the configured notifier. Failures are logged
// and never affect the cycle.
func (c *Collector) notify(event model.KPIEvent) {
	if c.notifier == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := c.notifier.Notify(event); err != nil {
		c.log.Error().Err(err).Str("kind", string(event.Kind)).Msg("failed to publish KPI event")
	}
}
