package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
	"github.com/richardkiene/triton-cmon-agent/pkg/ntp"
)

func TestNTPCollector_Produce(t *testing.T) {
	c := &NTPCollector{}
	in := Input{
		Target: Target{GZ: true},
		NTP: &ntp.Stats{
			Offset:         -1.563345,
			Frequency:      -3.525,
			SysJitter:      0.325513,
			ClkJitter:      0.442,
			RootDelay:      23.405,
			RootDispersion: 34.575,
			Stratum:        2,
			Precision:      -22,
		},
	}

	samples, err := c.Produce(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, samples, 8)

	byName := map[string]metric.Sample{}
	for _, s := range samples {
		byName[s.Name] = s
		assert.Equal(t, metric.KindGauge, s.Kind, "metric %s", s.Name)
	}

	assert.Equal(t, -1.563345, byName["ntp_offset_milliseconds"].Value)
	assert.Equal(t, -3.525, byName["ntp_frequency_ppm"].Value)
	assert.Equal(t, float64(2), byName["ntp_stratum"].Value)
	assert.Equal(t, float64(-22), byName["ntp_precision"].Value)
	assert.Equal(t, 23.405, byName["ntp_root_delay_milliseconds"].Value)
}

func TestNTPCollector_MissingBundle(t *testing.T) {
	c := &NTPCollector{}

	samples, err := c.Produce(context.Background(), Input{Target: Target{GZ: true}})
	require.NoError(t, err)
	assert.Empty(t, samples)
}
