// Package zones discovers SmartOS zones and their filesystem usage.
//
// # Overview
//
// The package wraps the vmadm(1M) and zfs(1M) CLIs. Inventory resolves a
// zone UUID to its runtime identity, most importantly the numeric zone ID
// that keys per-zone kernel statistics, and enumerates the running zones on
// a host. DatasetUsage reports used and available bytes for a zone's root
// dataset.
//
// # Resolution
//
//	inv := zones.NewVmadmInventory()
//	z, err := inv.Lookup(ctx, "b8c34577-3101-4796-85f4-a6de57f9e31b")
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//		// unknown, destroyed, or not running
//	}
//
// A zone that exists but is not running resolves as not found: its numeric
// zone ID is only valid while the zone runs, so there is nothing to collect.
package zones
