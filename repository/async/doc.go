// Package async bridges the blocking and non-blocking contract families in
// both directions.
//
// The forward direction (Query, Command, Repository, UnitOfWork) adapts a
// blocking implementation into its non-blocking contract: every call hands
// the blocking work to a Dispatcher and returns a future immediately.
//
// The reverse direction (BlockingQuery, BlockingCommand, BlockingRepository,
// BlockingUnitOfWork) adapts a non-blocking implementation back into its
// blocking contract by waiting on each future.
//
// The Dispatcher never queues and never runs work inline on the submitting
// goroutine: a task goes to an idle worker or onto a fresh goroutine. That
// rule is what makes the reverse adapters deadlock-free, even when a
// blocking adapter waits on work that itself submits more work to the same
// dispatcher. Wrapping a backend forward and then back reproduces the
// backend's observable behavior exactly, error values included.
package async
