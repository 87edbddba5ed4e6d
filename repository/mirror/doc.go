// Package mirror provides decorators that duplicate every write to a
// secondary backend (the tap), keeping it a best-effort copy of the primary
// without ever affecting the caller-visible outcome.
//
// Semantics shared by all decorators:
//
//   - The caller sees the primary's result and only the primary's result.
//   - Writes are mirrored as desired end state: additions and updates reach
//     the tap as AddOrUpdate, removals as tolerant removes. A Try operation
//     that reports false is still mirrored, since the end state it names is
//     still the one the tap should converge to.
//   - Tap failures of any kind are caught, logged at warning level when a
//     logger is configured, and discarded.
//   - Read operations are never mirrored.
//
// Two modes, chosen with WithMode:
//
//   - Sequential (default): the primary operation runs first; the tap is
//     only invoked after the primary succeeded, so a failed primary leaves
//     the tap untouched.
//   - Concurrent: primary and tap run at the same time and both are awaited.
//     This trades the ordering guarantee for latency: when the primary
//     fails, the tap write may still have happened, so the backends can
//     diverge until a later write converges them.
//
//	mirrored, err := mirror.NewRepository[string, Customer](
//		primary,
//		tap,
//		mirror.WithLogger(logger),
//		mirror.WithMode(mirror.Concurrent),
//	)
package mirror
