// Package repository provides core abstractions for composable data access:
// generic query, command, repository, and unit-of-work contracts in blocking
// and non-blocking form, plus the shared types the decorator and engine
// packages build on.
//
// This package defines the fundamental interfaces and types used across the
// different backends and decorators, including futures for non-blocking
// results, common error definitions, and the observability interfaces.
//
// Contracts are generic over two type parameters:
//   - K: the identity type, constrained to cmp.Ordered so every backend can
//     compare identities for equality and list entities in a total order
//   - E: the entity type, constrained to Entity[K] so every stored value can
//     report the identity it is stored under
//
// Key types:
//   - Query, Command, Repository, UnitOfWork: the blocking contracts
//   - AsyncQuery, AsyncCommand, AsyncRepository, AsyncUnitOfWork: the
//     non-blocking contracts, returning a Future per operation
//   - Future: single-assignment outcome handle for non-blocking operations
//   - Composed, AsyncComposed: repository façades over separate query and
//     command implementations
//
// Common usage pattern:
//
//	store := memoryengine.NewStore[string, Customer]()
//
//	repo, err := repository.Compose[string, Customer](store, store)
//	if err != nil {
//		// handle error
//	}
//
//	if err = repo.Add(ctx, customer); err != nil {
//		// handle error
//	}
//
//	all, err := repo.GetAll(ctx)
package repository
