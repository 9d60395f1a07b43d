package kpi

import (
	"github.com/rs/zerolog"

	"SliceScope/internal/model"
	"SliceScope/internal/query"
)

// Deriver turns raw backend series into per-slice KPI values. It holds no
// state across invocations; every method issues its queries, reduces the
// rows and returns.
type Deriver struct {
	querier model.Querier
	builder query.Builder
	log     zerolog.Logger
}

// NewDeriver creates a Deriver over the given querier and expression builder.
func NewDeriver(querier model.Querier, builder query.Builder, log zerolog.Logger) *Deriver {
	return &Deriver{
		querier: querier,
		builder: builder,
		log:     log.With().Str("component", "kpi").Logger(),
	}
}
