package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SliceScope/internal/model"
)

func TestBuilderSliceActivity(t *testing.T) {
	b := NewBuilder("5s")
	assert.Equal(t, "sum by (snssai) (rate(fivegs_smffunction_sm_seid_session[5s]))", b.SliceActivity())
}

func TestBuilderSessionThroughput(t *testing.T) {
	b := NewBuilder("5s")

	tests := []struct {
		name      string
		direction model.Direction
		want      string
	}{
		{
			name:      "uplink selects the outgoing N3 volume counter",
			direction: model.DirectionUplink,
			want:      `sum by (seid) (rate(fivegs_ep_n3_gtp_outdatavolumen3upf_seid[5s]) * on (seid) group_right sum(fivegs_smffunction_sm_seid_session{snssai="1-000001"}) by (seid, snssai)) * 8`,
		},
		{
			name:      "downlink selects the incoming N3 volume counter",
			direction: model.DirectionDownlink,
			want:      `sum by (seid) (rate(fivegs_ep_n3_gtp_indatavolumen3upf_seid[5s]) * on (seid) group_right sum(fivegs_smffunction_sm_seid_session{snssai="1-000001"}) by (seid, snssai)) * 8`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := b.SessionThroughput("1-000001", test.direction)
			assert.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestBuilderRejectsUnsupportedDirection(t *testing.T) {
	b := NewBuilder("5s")

	_, err := b.SessionThroughput("1-000001", model.Direction("sideways"))
	assert.Error(t, err)

	_, err = b.PacketLossRatio("1-000001", model.Direction("sideways"))
	assert.Error(t, err)
}

func TestBuilderPacketLossRatio(t *testing.T) {
	b := NewBuilder("30s")

	expr, err := b.PacketLossRatio("2-000002", model.DirectionDownlink)
	assert.NoError(t, err)
	assert.Contains(t, expr, "rate(fivegs_ep_n3_gtp_dl_packets_dropped_total[30s])")
	assert.Contains(t, expr, "rate(fivegs_ep_n3_gtp_dl_packets_total[30s])")
	assert.Contains(t, expr, `upf_smf_association{snssai="2-000002"}`)
	assert.Contains(t, expr, "/ on(instance)")
}

func TestBuilderProbeExpressions(t *testing.T) {
	b := NewBuilder("5s")

	// The probing subsystem labels slices with underscores, not hyphens.
	assert.Equal(t, `avg_over_time(probe_duration_seconds{slice_id="1_000001"}[5s])`, b.ProbeLatency("1-000001"))
	assert.Equal(t, `stddev_over_time(probe_duration_seconds{slice_id="1_000001"}[5s])`, b.ProbeJitter("1-000001"))
}

func TestProbeSliceLabel(t *testing.T) {
	assert.Equal(t, "1_000001", ProbeSliceLabel("1-000001"))
	assert.Equal(t, "plain", ProbeSliceLabel("plain"))
	assert.Equal(t, "a_b_c", ProbeSliceLabel("a-b-c"))
}
