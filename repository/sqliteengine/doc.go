// Package sqliteengine provides a SQLite implementation of the repository contracts.
//
// This package stores one entity per row, keyed by the entity identity, in a
// single table with a BLOB payload column. Because the payload column is
// opaque bytes, any codec can serialize the entities, including binary
// codecs like CBOR. The engine is built on database/sql with the pure Go
// modernc.org/sqlite driver, so it needs no cgo and works well for embedded
// deployments and tests.
//
// Key features:
//   - Pure Go driver, in-memory databases supported for tests
//   - Pluggable payload codec (JSON by default)
//   - Guarded insert/update/delete built on ON CONFLICT and rows affected
//   - Configurable table name and optional logging
//
// Usage examples:
//
//	// Open a database file with sensible pragmas applied
//	store, _ := sqliteengine.Open[string, Document]("documents.db")
//
//	// Or wrap an existing handle, with options
//	store, _ := sqliteengine.NewStore[string, Document](
//		db,
//		sqliteengine.WithTableName("documents"),
//		sqliteengine.WithCodec(codec.CBOR),
//	)
//
//	_ = store.CreateSchema(ctx)
//	err := store.Add(ctx, document)
package sqliteengine
