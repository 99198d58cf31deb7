package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/richardkiene/triton-cmon-agent/pkg/kstat"
	"github.com/richardkiene/triton-cmon-agent/pkg/metric"
)

// LinkCollector reports a guest's network traffic counters from the link
// module. A guest's VNICs are global zone kstats named z<zoneid>_<iface>,
// so the query runs against instance 0 with a zone-scoped name glob.
type LinkCollector struct{}

var linkFields = []fieldMetric{
	{"ipackets64", "net_agg_packets_in", "Aggregate inbound packets", metric.KindCounter},
	{"opackets64", "net_agg_packets_out", "Aggregate outbound packets", metric.KindCounter},
	{"rbytes64", "net_agg_bytes_in", "Aggregate inbound bytes", metric.KindCounter},
	{"obytes64", "net_agg_bytes_out", "Aggregate outbound bytes", metric.KindCounter},
}

// Name returns the collector key.
func (c *LinkCollector) Name() string { return "link" }

// Scope returns ScopeVM.
func (c *LinkCollector) Scope() Scope { return ScopeVM }

// Queries declares the guest's VNIC link reads.
func (c *LinkCollector) Queries(target Target) []kstat.Query {
	return []kstat.Query{{
		Module:   "link",
		Name:     fmt.Sprintf("z%d_*", target.ZoneID),
		Instance: 0,
	}}
}

// Produce emits one sample set per VNIC, labeled with the interface name
// inside the zone.
func (c *LinkCollector) Produce(ctx context.Context, in Input) ([]metric.Sample, error) {
	var samples []metric.Sample
	prefix := fmt.Sprintf("z%d_", in.Target.ZoneID)

	for _, rec := range kstat.Select(c.Queries(in.Target)[0], in.Records) {
		iface := strings.TrimPrefix(rec.Name, prefix)
		for _, s := range samplesFromRecord(rec, linkFields) {
			samples = append(samples, s.WithLabel("interface", iface))
		}
	}

	return samples, nil
}
