package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

func zoneMiscRecord(zoneID int) kstat.Record {
	return kstat.Record{
		Module:   "zones",
		Instance: zoneID,
		Name:     "test",
		Class:    "zone_misc",
		Snaptime: 1000.5,
		Data: map[string]kstat.Value{
			"nsec_user":    kstat.Uint64Value(123456789000),
			"nsec_sys":     kstat.Uint64Value(98765432100),
			"nsec_waitrq":  kstat.Uint64Value(5555555),
			"avenrun_1min": kstat.Uint64Value(512),
			"boot_time":    kstat.Uint64Value(1755600000),
		},
	}
}

func TestZoneMiscCollector_Produce(t *testing.T) {
	c := &ZoneMiscCollector{}
	in := Input{
		Target:  vmTarget(5),
		Records: []kstat.Record{zoneMiscRecord(5)},
	}

	samples, err := c.Produce(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, samples, 5)

	byName := map[string]metric.Sample{}
	for _, s := range samples {
		byName[s.Name] = s
	}

	assert.Equal(t, float64(123456789000), byName["cpu_user_usage"].Value)
	assert.Equal(t, metric.KindCounter, byName["cpu_user_usage"].Kind)
	assert.Equal(t, float64(98765432100), byName["cpu_sys_usage"].Value)
	assert.Equal(t, float64(5555555), byName["cpu_wait_time"].Value)

	// 512 / 256 = 2.0
	assert.Equal(t, 2.0, byName["load_average"].Value)
	assert.Equal(t, metric.KindGauge, byName["load_average"].Kind)

	assert.Equal(t, float64(1755600000), byName["boot_timestamp"].Value)
}

func TestZoneMiscCollector_NoRecords(t *testing.T) {
	c := &ZoneMiscCollector{}

	samples, err := c.Produce(context.Background(), Input{Target: vmTarget(5)})
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestZoneMiscCollector_IgnoresOtherZones(t *testing.T) {
	c := &ZoneMiscCollector{}
	in := Input{
		Target:  vmTarget(5),
		Records: []kstat.Record{zoneMiscRecord(9)},
	}

	samples, err := c.Produce(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestZoneMiscCollector_QueryIsDeltaFlagged(t *testing.T) {
	queries := (&ZoneMiscCollector{}).Queries(vmTarget(5))
	require.Len(t, queries, 1)
	assert.True(t, queries[0].Delta)
	assert.EqualValues(t, 5, queries[0].Instance)
}
