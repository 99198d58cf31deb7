package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

func TestMemCapCollector_Produce(t *testing.T) {
	c := &MemCapCollector{}
	in := Input{
		Target: vmTarget(5),
		Records: []kstat.Record{{
			Module:   "memory_cap",
			Instance: 5,
			Name:     testVMUUID[:8],
			Class:    "zone_memory_cap",
			Data: map[string]kstat.Value{
				"rss":             kstat.Uint64Value(1073741824),
				"physcap":         kstat.Uint64Value(2147483648),
				"swap":            kstat.Uint64Value(536870912),
				"swapcap":         kstat.Uint64Value(4294967296),
				"anon_alloc_fail": kstat.Uint64Value(3),
			},
		}},
	}

	samples, err := c.Produce(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, samples, 5)

	byName := map[string]metric.Sample{}
	for _, s := range samples {
		byName[s.Name] = s
	}

	assert.Equal(t, float64(1073741824), byName["mem_agg_usage"].Value)
	assert.Equal(t, metric.KindGauge, byName["mem_agg_usage"].Kind)
	assert.Equal(t, float64(2147483648), byName["mem_limit"].Value)
	assert.Equal(t, float64(536870912), byName["mem_swap"].Value)
	assert.Equal(t, float64(4294967296), byName["mem_swap_limit"].Value)
	assert.Equal(t, float64(3), byName["mem_anon_alloc_fail"].Value)
	assert.Equal(t, metric.KindCounter, byName["mem_anon_alloc_fail"].Kind)
}

func TestMemCapCollector_UncappedZone(t *testing.T) {
	c := &MemCapCollector{}

	samples, err := c.Produce(context.Background(), Input{Target: vmTarget(5)})
	require.NoError(t, err)
	assert.Empty(t, samples)
}
