package sqliteengine

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/codec"
)

// Sentinel errors for opening and preparing SQLite databases.
var (
	// ErrEmptyDatabasePath occurs when Open is called with an empty path.
	ErrEmptyDatabasePath = errors.New("database path must not be empty")

	// ErrOpeningDatabaseFailed occurs when the SQLite database cannot be opened or reached.
	ErrOpeningDatabaseFailed = errors.New("failed to open sqlite database")

	// ErrCreatingSchemaFailed occurs when the entity table cannot be created.
	ErrCreatingSchemaFailed = errors.New("failed to create sqlite schema")
)

const (
	defaultTableName = "entities"

	driverName     = "sqlite"
	memoryPath     = ":memory:"
	defaultPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"

	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgDecodePayloadFailed = "failed to decode entity payload"
	logMsgEncodePayloadFailed = "failed to encode entity payload"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgQueryCompleted      = "query completed"
	logMsgWriteCompleted      = "write completed"
	logMsgEntityNotFound      = "entity not found"
	logMsgPreconditionFailed  = "write precondition not met"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "repository operation: "

	logAttrError        = "error"
	logAttrQuery        = "query"
	logAttrOperation    = "operation"
	logAttrEntityCount  = "entity_count"
	logAttrDurationMS   = "duration_ms"
	logAttrRowsAffected = "rows_affected"

	operationGetCount      = "get_count"
	operationGetAll        = "get_all"
	operationGetByID       = "get_by_id"
	operationTryGetByID    = "try_get_by_id"
	operationAdd           = "add"
	operationAddOrUpdate   = "add_or_update"
	operationUpdate        = "update"
	operationRemove        = "remove"
	operationRemoveByID    = "remove_by_id"
	operationTryAdd        = "try_add"
	operationTryUpdate     = "try_update"
	operationTryRemove     = "try_remove"
	operationTryRemoveByID = "try_remove_by_id"
)

type rowsAffectedInt64 = int64

// statements holds the SQL for one table, rendered once at construction.
type statements struct {
	createSchema string
	count        string
	selectAll    string
	selectByID   string
	insert       string
	upsert       string
	updateByID   string
	deleteByID   string
}

func buildStatements(tableName string) statements {
	return statements{
		createSchema: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, payload BLOB NOT NULL)`, tableName),
		count:        fmt.Sprintf(`SELECT COUNT(*) FROM %s`, tableName),
		selectAll:    fmt.Sprintf(`SELECT payload FROM %s ORDER BY id ASC`, tableName),
		selectByID:   fmt.Sprintf(`SELECT payload FROM %s WHERE id = ?`, tableName),
		insert:       fmt.Sprintf(`INSERT INTO %s (id, payload) VALUES (?, ?)`, tableName),
		upsert:       fmt.Sprintf(`INSERT INTO %s (id, payload) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, tableName),
		updateByID:   fmt.Sprintf(`UPDATE %s SET payload = ? WHERE id = ?`, tableName),
		deleteByID:   fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, tableName),
	}
}

// Store is a SQLite-backed implementation of the repository contracts.
// Each entity occupies one row keyed by its identity; the serialized entity
// lives in a BLOB payload column encoded with the configured codec.
type Store[K cmp.Ordered, E repository.Entity[K]] struct {
	db     *sql.DB
	codec  codec.Codec
	logger repository.Logger
	stmts  statements
}

// NewStore creates a new Store on top of an existing database handle with
// optional configuration. The caller keeps ownership of the handle.
func NewStore[K cmp.Ordered, E repository.Entity[K]](db *sql.DB, options ...Option) (*Store[K, E], error) {
	if db == nil {
		return nil, repository.ErrNilDatabaseConnection
	}

	cfg := defaultConfig()

	for _, option := range options {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}

	return &Store[K, E]{
		db:     db,
		codec:  cfg.codec,
		logger: cfg.logger,
		stmts:  buildStatements(cfg.tableName),
	}, nil
}

// Open opens the SQLite database at path with pragmas suited for concurrent
// access and builds a Store on top of it. Pass ":memory:" for a private
// in-memory database. Close releases the handle again.
func Open[K cmp.Ordered, E repository.Entity[K]](path string, options ...Option) (*Store[K, E], error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyDatabasePath
	}

	cleanPath := filepath.Clean(path)

	dsn := cleanPath
	if cleanPath != memoryPath {
		dsn += defaultPragmas
	}

	sqlDB, openErr := sql.Open(driverName, dsn)
	if openErr != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, openErr)
	}

	if cleanPath == memoryPath {
		// Each pooled connection would otherwise see its own empty
		// in-memory database.
		sqlDB.SetMaxOpenConns(1)
	}

	if pingErr := sqlDB.Ping(); pingErr != nil {
		_ = sqlDB.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	store, err := NewStore[K, E](sqlDB, options...)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database handle.
func (s *Store[K, E]) Close() error {
	return s.db.Close()
}

// CreateSchema creates the entity table if it does not exist yet.
func (s *Store[K, E]) CreateSchema(ctx context.Context) error {
	if _, execErr := s.db.ExecContext(ctx, s.stmts.createSchema); execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, s.stmts.createSchema)
		return errors.Join(ErrCreatingSchemaFailed, execErr)
	}

	return nil
}

// GetCount returns the number of stored entities.
func (s *Store[K, E]) GetCount(ctx context.Context) (int, error) {
	start := time.Now()
	row := s.db.QueryRowContext(ctx, s.stmts.count)

	var count int64
	scanErr := row.Scan(&count)
	duration := time.Since(start)
	s.logQueryWithDuration(s.stmts.count, operationGetCount, duration)

	if scanErr != nil {
		s.logError(logMsgDBQueryFailed, scanErr, logAttrQuery, s.stmts.count)
		return 0, errors.Join(repository.ErrQueryFailed, scanErr)
	}

	s.logOperation(logMsgQueryCompleted,
		logAttrOperation, operationGetCount,
		logAttrEntityCount, int(count),
		logAttrDurationMS, s.toMilliseconds(duration))

	return int(count), nil
}

// GetAll returns every stored entity ordered by identity.
func (s *Store[K, E]) GetAll(ctx context.Context) ([]E, error) {
	start := time.Now()
	rows, queryErr := s.db.QueryContext(ctx, s.stmts.selectAll)
	duration := time.Since(start)
	s.logQueryWithDuration(s.stmts.selectAll, operationGetAll, duration)

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, s.stmts.selectAll)
		return nil, errors.Join(repository.ErrQueryFailed, queryErr)
	}
	defer rows.Close()

	entities := make([]E, 0)

	for rows.Next() {
		var payload []byte

		if scanErr := rows.Scan(&payload); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(repository.ErrScanningRowFailed, scanErr)
		}

		entity, decodeErr := s.decodePayload(payload)
		if decodeErr != nil {
			s.logError(logMsgDecodePayloadFailed, decodeErr)
			return nil, decodeErr
		}

		entities = append(entities, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(logMsgDBQueryFailed, rowsErr, logAttrQuery, s.stmts.selectAll)
		return nil, errors.Join(repository.ErrQueryFailed, rowsErr)
	}

	// The id column holds key text, whose lexicographic order differs from
	// the natural key order for numeric key types.
	slices.SortFunc(entities, func(a, b E) int {
		return cmp.Compare(a.Identity(), b.Identity())
	})

	s.logOperation(logMsgQueryCompleted,
		logAttrOperation, operationGetAll,
		logAttrEntityCount, len(entities),
		logAttrDurationMS, s.toMilliseconds(duration))

	return entities, nil
}

// GetByID returns the entity stored under id,
// or repository.ErrEntityNotFound when no such entity exists.
func (s *Store[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	var empty E

	entity, found, err := s.lookupByID(ctx, operationGetByID, id)
	if err != nil {
		return empty, err
	}

	if !found {
		return empty, repository.ErrEntityNotFound
	}

	return entity, nil
}

// TryGetByID returns the entity stored under id and true,
// or the zero entity and false when no such entity exists.
func (s *Store[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	return s.lookupByID(ctx, operationTryGetByID, id)
}

// Add inserts a new entity,
// or returns repository.ErrEntityAlreadyExists when its identity is already taken.
func (s *Store[K, E]) Add(ctx context.Context, entity E) error {
	inserted, err := s.execInsert(ctx, operationAdd, entity)
	if err != nil {
		return err
	}

	if !inserted {
		return repository.ErrEntityAlreadyExists
	}

	return nil
}

// TryAdd inserts a new entity and reports whether the insert happened.
// An already taken identity is a normal false outcome, not an error.
func (s *Store[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	return s.execInsert(ctx, operationTryAdd, entity)
}

// AddOrUpdate inserts the entity or replaces the stored state under the same identity.
func (s *Store[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	payload, encodeErr := s.encodePayload(entity)
	if encodeErr != nil {
		s.logError(logMsgEncodePayloadFailed, encodeErr)
		return encodeErr
	}

	_, err := s.execGuarded(ctx, operationAddOrUpdate, s.stmts.upsert, s.keyText(entity.Identity()), payload)

	return err
}

// Update replaces the stored state of an existing entity,
// or returns repository.ErrEntityNotFound when its identity is unknown.
func (s *Store[K, E]) Update(ctx context.Context, entity E) error {
	rowsAffected, err := s.execUpdate(ctx, operationUpdate, entity)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrEntityNotFound
	}

	return nil
}

// TryUpdate replaces the stored state of an existing entity and reports
// whether an entity was updated. An unknown identity is a normal false
// outcome, not an error.
func (s *Store[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	rowsAffected, err := s.execUpdate(ctx, operationTryUpdate, entity)
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// Remove deletes the entity stored under the identity of entity,
// or returns repository.ErrEntityNotFound when no such entity exists.
func (s *Store[K, E]) Remove(ctx context.Context, entity E) error {
	return s.removeByID(ctx, operationRemove, entity.Identity())
}

// RemoveByID deletes the entity stored under id,
// or returns repository.ErrEntityNotFound when no such entity exists.
func (s *Store[K, E]) RemoveByID(ctx context.Context, id K) error {
	return s.removeByID(ctx, operationRemoveByID, id)
}

// TryRemove deletes the entity stored under the identity of entity and
// reports whether an entity was removed.
func (s *Store[K, E]) TryRemove(ctx context.Context, entity E) (bool, error) {
	return s.tryRemoveByID(ctx, operationTryRemove, entity.Identity())
}

// TryRemoveByID deletes the entity stored under id and reports whether an
// entity was removed.
func (s *Store[K, E]) TryRemoveByID(ctx context.Context, id K) (bool, error) {
	return s.tryRemoveByID(ctx, operationTryRemoveByID, id)
}

// lookupByID runs the single entity select shared by the strict and the
// tolerant lookup.
func (s *Store[K, E]) lookupByID(ctx context.Context, operation string, id K) (E, bool, error) {
	var empty E

	start := time.Now()
	row := s.db.QueryRowContext(ctx, s.stmts.selectByID, s.keyText(id))

	var payload []byte
	scanErr := row.Scan(&payload)
	duration := time.Since(start)
	s.logQueryWithDuration(s.stmts.selectByID, operation, duration)

	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			s.logOperation(logMsgEntityNotFound,
				logAttrOperation, operation,
				logAttrDurationMS, s.toMilliseconds(duration))

			return empty, false, nil
		}

		s.logError(logMsgDBQueryFailed, scanErr, logAttrQuery, s.stmts.selectByID)

		return empty, false, errors.Join(repository.ErrQueryFailed, scanErr)
	}

	entity, decodeErr := s.decodePayload(payload)
	if decodeErr != nil {
		s.logError(logMsgDecodePayloadFailed, decodeErr)
		return empty, false, decodeErr
	}

	s.logOperation(logMsgQueryCompleted,
		logAttrOperation, operation,
		logAttrEntityCount, 1,
		logAttrDurationMS, s.toMilliseconds(duration))

	return entity, true, nil
}

func (s *Store[K, E]) removeByID(ctx context.Context, operation string, id K) error {
	rowsAffected, err := s.execGuarded(ctx, operation, s.stmts.deleteByID, s.keyText(id))
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrEntityNotFound
	}

	return nil
}

func (s *Store[K, E]) tryRemoveByID(ctx context.Context, operation string, id K) (bool, error) {
	rowsAffected, err := s.execGuarded(ctx, operation, s.stmts.deleteByID, s.keyText(id))
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// execInsert runs the plain insert shared by the strict and the tolerant
// add. A unique constraint violation is a normal outcome reported as false.
func (s *Store[K, E]) execInsert(ctx context.Context, operation string, entity E) (bool, error) {
	payload, encodeErr := s.encodePayload(entity)
	if encodeErr != nil {
		s.logError(logMsgEncodePayloadFailed, encodeErr)
		return false, encodeErr
	}

	start := time.Now()
	_, execErr := s.db.ExecContext(ctx, s.stmts.insert, s.keyText(entity.Identity()), payload)
	duration := time.Since(start)
	s.logQueryWithDuration(s.stmts.insert, operation, duration)

	if execErr != nil {
		if isUniqueViolation(execErr) {
			s.logOperation(logMsgPreconditionFailed,
				logAttrOperation, operation,
				logAttrDurationMS, s.toMilliseconds(duration))

			return false, nil
		}

		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, s.stmts.insert)

		return false, errors.Join(repository.ErrExecFailed, execErr)
	}

	s.logOperation(logMsgWriteCompleted,
		logAttrOperation, operation,
		logAttrRowsAffected, rowsAffectedInt64(1),
		logAttrDurationMS, s.toMilliseconds(duration))

	return true, nil
}

// execUpdate runs the update statement shared by the strict and the
// tolerant update.
func (s *Store[K, E]) execUpdate(ctx context.Context, operation string, entity E) (rowsAffectedInt64, error) {
	payload, encodeErr := s.encodePayload(entity)
	if encodeErr != nil {
		s.logError(logMsgEncodePayloadFailed, encodeErr)
		return 0, encodeErr
	}

	return s.execGuarded(ctx, operation, s.stmts.updateByID, payload, s.keyText(entity.Identity()))
}

// execGuarded executes one write statement and returns the affected row
// count; the caller derives the operation outcome from that count.
func (s *Store[K, E]) execGuarded(ctx context.Context, operation, query string, args ...any) (rowsAffectedInt64, error) {
	start := time.Now()
	result, execErr := s.db.ExecContext(ctx, query, args...)
	duration := time.Since(start)
	s.logQueryWithDuration(query, operation, duration)

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, query)
		return 0, errors.Join(repository.ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(repository.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	s.logOperation(logMsgWriteCompleted,
		logAttrOperation, operation,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, s.toMilliseconds(duration))

	return rowsAffected, nil
}

// keyText renders an identity as the text stored in the id column.
func (s *Store[K, E]) keyText(id K) string {
	return fmt.Sprint(id)
}

// encodePayload serializes an entity for the BLOB payload column.
func (s *Store[K, E]) encodePayload(entity E) ([]byte, error) {
	payload, marshalErr := s.codec.Marshal(entity)
	if marshalErr != nil {
		return nil, errors.Join(repository.ErrEncodingPayloadFailed, marshalErr)
	}

	return payload, nil
}

// decodePayload deserializes an entity from the BLOB payload column.
func (s *Store[K, E]) decodePayload(payload []byte) (E, error) {
	var entity E

	if unmarshalErr := s.codec.Unmarshal(payload, &entity); unmarshalErr != nil {
		return entity, errors.Join(repository.ErrDecodingPayloadFailed, unmarshalErr)
	}

	return entity, nil
}

// isUniqueViolation reports whether err is a primary key or unique
// constraint violation raised by the SQLite driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (s *Store[K, E]) logQueryWithDuration(query, operation string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation,
			logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, query)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s *Store[K, E]) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (s *Store[K, E]) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store[K, E]) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// probe pins the engine to its contract at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure the store implements the full repository contract.
var _ repository.Repository[string, probe] = (*Store[string, probe])(nil)
