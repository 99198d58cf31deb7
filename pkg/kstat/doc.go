// Package kstat provides typed access to illumos kernel statistics.
//
// # Overview
//
// Kernel statistics (kstats) are named collections of values published by the
// kernel, identified by a module, instance, name, and class tuple. This
// package models kstat selection queries, the records a read produces, and a
// Reader that performs batched reads via the kstat(1M) CLI with JSON output.
//
// # Queries
//
// A Query selects kstats by module, class, name (shell glob allowed), and
// instance. Two queries with the same Signature select the same kernel data;
// readers deduplicate by signature so the number of kernel reads per pass is
// bounded by the number of distinct signatures, not by the number of callers.
//
//	q := kstat.Query{Module: "zones", Class: "zone_misc", Instance: 14}
//
// # Delta tracking
//
// Delta-flagged queries additionally compute per-field differences and
// per-second rates against the previous read of the same kstat tuple. The
// first read of a tuple carries no previous state and is marked not ready;
// callers must treat it as "no data yet" rather than a zero measurement.
// A counter that moves backward (wraparound, kstat recreation) produces a
// zero delta, never a negative one.
//
// # Reading
//
//	r := kstat.NewCLIReader()
//	recs, err := r.Read(ctx, []kstat.Query{q})
//
// CLIReader shells out to kstat(1M) once per distinct signature and parses
// its JSON output. A failed invocation yields zero records for that signature
// only; other signatures in the same pass are unaffected.
package kstat
