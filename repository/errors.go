package repository

import (
	"errors"
)

// Outcome sentinels reported by strict operations. Backends return them
// bare or joined with a cause; callers classify with errors.Is.
var (
	// ErrEntityNotFound is reported by strict lookups and mutations when no
	// entity with the requested identity is stored.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityAlreadyExists is reported by Add when an entity with the
	// same identity is already stored.
	ErrEntityAlreadyExists = errors.New("entity already exists")
)

// Construction sentinels. Constructors across this module validate their
// required collaborators up front and fail with one of these; a broken
// dependency is never deferred to the first operation.
var (
	// ErrNilInner is returned when a decorator is constructed around a nil
	// inner instance.
	ErrNilInner = errors.New("nil inner supplied")

	// ErrNilQuery is returned when a repository is composed from a nil
	// query side.
	ErrNilQuery = errors.New("nil query supplied")

	// ErrNilCommand is returned when a repository is composed from a nil
	// command side.
	ErrNilCommand = errors.New("nil command supplied")

	// ErrNilLogger is returned when a nil logger is supplied explicitly.
	ErrNilLogger = errors.New("nil logger supplied")

	// ErrNilDatabaseConnection is returned when an engine is constructed
	// around a nil database handle or pool.
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")

	// ErrEmptyTableName is returned when an engine is configured with an
	// empty table name.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrNilCodec is returned when an engine is configured with a nil
	// payload codec.
	ErrNilCodec = errors.New("nil codec supplied")
)

// Storage failure sentinels. The database engines join these with the
// driver's error, which keeps the cause inspectable while giving callers a
// stable kind to match; they are the error kinds a recovery decorator
// typically declares.
var (
	// ErrQueryFailed marks a failed read against the backing database.
	ErrQueryFailed = errors.New("database query execution failed")

	// ErrExecFailed marks a failed write against the backing database.
	ErrExecFailed = errors.New("database execution failed")

	// ErrScanningRowFailed marks a row that could not be scanned.
	ErrScanningRowFailed = errors.New("failed to scan database row")

	// ErrGettingRowsAffectedFailed marks a write whose affected-row count
	// could not be read.
	ErrGettingRowsAffectedFailed = errors.New("failed to get rows affected count")

	// ErrBuildingQueryFailed marks a statement that could not be built.
	ErrBuildingQueryFailed = errors.New("failed to build query")

	// ErrEncodingPayloadFailed marks an entity that could not be encoded
	// for storage.
	ErrEncodingPayloadFailed = errors.New("failed to encode entity payload")

	// ErrDecodingPayloadFailed marks a stored payload that could not be
	// decoded into an entity.
	ErrDecodingPayloadFailed = errors.New("failed to decode entity payload")
)
