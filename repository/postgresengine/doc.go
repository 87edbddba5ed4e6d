// Package postgresengine provides a PostgreSQL implementation of the repository contracts.
//
// This package stores one entity per row, keyed by the entity identity, using
// PostgreSQL as the storage backend and supporting multiple database adapters
// (pgx, sql.DB, sqlx). Entities are serialized to JSON and kept in a jsonb
// payload column, so lookups, upserts, and removals compile to single
// statements with the outcome derived from the affected row count.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Optional read replica routing driven by the consistency level in the context
//   - Upsert and guarded insert/update/delete built on ON CONFLICT and rows affected
//   - Configurable table names, logging, metrics, and tracing
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool[string, Document](db)
//
//	// With a custom table and operational logging
//	store, _ := postgresengine.NewStoreFromPGXPool[string, Document](
//		db,
//		postgresengine.WithTableName("documents"),
//		postgresengine.WithLogger(logger),
//	)
//
//	count, _ := store.GetCount(ctx)
//	err := store.Add(ctx, document)
package postgresengine
