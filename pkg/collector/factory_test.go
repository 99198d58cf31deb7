package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	assert.Len(t, r.For(ScopeGZ), len(DefaultGZCollectors()))
	assert.Len(t, r.For(ScopeVM), len(DefaultVMCollectors()))
}

func TestDefaultCollectors_UniqueNames(t *testing.T) {
	for _, set := range [][]Collector{DefaultGZCollectors(), DefaultVMCollectors()} {
		seen := map[string]bool{}
		for _, c := range set {
			require.NotEmpty(t, c.Name())
			assert.False(t, seen[c.Name()], "duplicate collector name %s", c.Name())
			seen[c.Name()] = true
		}
	}
}

func TestDefaultCollectors_Scopes(t *testing.T) {
	for _, c := range DefaultGZCollectors() {
		assert.Equal(t, ScopeGZ, c.Scope(), "collector %s", c.Name())
	}
	for _, c := range DefaultVMCollectors() {
		assert.Equal(t, ScopeVM, c.Scope(), "collector %s", c.Name())
	}
}

func TestDefaultVMCollectors_SharedZoneMiscRead(t *testing.T) {
	// The zone_misc and cpu_usage collectors must share one kernel read.
	target := vmTarget(7)

	misc := (&ZoneMiscCollector{}).Queries(target)
	usage := (&CPUUsageCollector{}).Queries(target)

	require.Len(t, misc, 1)
	require.Len(t, usage, 1)
	assert.Equal(t, misc[0].Signature(), usage[0].Signature())
}

func TestDefaultVMCollectors_QueriesScopedToZone(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	for _, q := range r.QueriesFor(vmTarget(12)) {
		switch q.Module {
		case "link":
			assert.Equal(t, "z12_*", q.Name)
		case "zones", "memory_cap", "tcp", "zone_vfs", "caps":
			assert.EqualValues(t, 12, q.Instance, "module %s", q.Module)
		}
	}
}
