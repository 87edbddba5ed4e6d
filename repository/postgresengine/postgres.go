package postgresengine

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/codec"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/postgresengine/internal/adapters"
)

const (
	defaultTableName = "entities"

	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgDecodePayloadFailed = "failed to decode entity payload"
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
	logAttrPrecondition = "precondition"

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

	colID      = "id"
	colPayload = "payload"

	dialectPostgres = "postgres"
	castJsonb       = "?::jsonb"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// Store is a PostgreSQL-backed implementation of the repository contracts.
// Each entity occupies one row keyed by its identity; the serialized entity
// lives in a jsonb payload column. It leverages a database adapter and
// supports customizable logging, metrics, tracing, and table configuration.
type Store[K cmp.Ordered, E repository.Entity[K]] struct {
	db               adapters.DBAdapter
	tableName        string
	logger           repository.Logger
	metricsCollector repository.MetricsCollector
	tracingCollector repository.TracingCollector
	contextualLogger repository.ContextualLogger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool[K cmp.Ordered, E repository.Entity[K]](db *pgxpool.Pool, options ...Option) (*Store[K, E], error) {
	if db == nil {
		return nil, repository.ErrNilDatabaseConnection
	}

	return newStore[K, E](adapters.NewPGXAdapter(db), options)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary pgx Pool
// for writes and strongly consistent reads, plus a replica pool that serves
// reads whose context opts into eventual consistency.
func NewStoreFromPGXPoolAndReplica[K cmp.Ordered, E repository.Entity[K]](
	primary *pgxpool.Pool,
	replica *pgxpool.Pool,
	options ...Option,
) (*Store[K, E], error) {

	if primary == nil || replica == nil {
		return nil, repository.ErrNilDatabaseConnection
	}

	return newStore[K, E](adapters.NewPGXAdapterWithReplica(primary, replica), options)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB[K cmp.Ordered, E repository.Entity[K]](db *sql.DB, options ...Option) (*Store[K, E], error) {
	if db == nil {
		return nil, repository.ErrNilDatabaseConnection
	}

	return newStore[K, E](adapters.NewSQLAdapter(db), options)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX[K cmp.Ordered, E repository.Entity[K]](db *sqlx.DB, options ...Option) (*Store[K, E], error) {
	if db == nil {
		return nil, repository.ErrNilDatabaseConnection
	}

	return newStore[K, E](adapters.NewSQLXAdapter(db), options)
}

func newStore[K cmp.Ordered, E repository.Entity[K]](db adapters.DBAdapter, options []Option) (*Store[K, E], error) {
	cfg := defaultConfig()

	for _, option := range options {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}

	return &Store[K, E]{
		db:               db,
		tableName:        cfg.tableName,
		logger:           cfg.logger,
		metricsCollector: cfg.metricsCollector,
		tracingCollector: cfg.tracingCollector,
		contextualLogger: cfg.contextualLogger,
	}, nil
}

// GetCount returns the number of stored entities.
func (s *Store[K, E]) GetCount(ctx context.Context) (int, error) {
	observer, ctx := s.startReadObservation(ctx, operationGetCount)

	sqlQuery, buildErr := s.buildCountQuery()
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr)
		observer.recordError(errorTypeBuildQuery)

		return 0, buildErr
	}

	rows, execErr := s.executeQuery(ctx, observer, sqlQuery)
	if execErr != nil {
		return 0, execErr
	}
	defer s.closeRows(ctx, rows)

	var count int64
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			observer.recordError(errorTypeScanRow)

			return 0, errors.Join(repository.ErrScanningRowFailed, scanErr)
		}
	}

	observer.recordSuccess(int(count))

	return int(count), nil
}

// GetAll returns every stored entity ordered by identity.
func (s *Store[K, E]) GetAll(ctx context.Context) ([]E, error) {
	observer, ctx := s.startReadObservation(ctx, operationGetAll)

	sqlQuery, buildErr := s.buildSelectAllQuery()
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr)
		observer.recordError(errorTypeBuildQuery)

		return nil, buildErr
	}

	rows, execErr := s.executeQuery(ctx, observer, sqlQuery)
	if execErr != nil {
		return nil, execErr
	}
	defer s.closeRows(ctx, rows)

	entities := make([]E, 0)

	for rows.Next() {
		var payload []byte

		if scanErr := rows.Scan(&payload); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			observer.recordError(errorTypeScanRow)

			return nil, errors.Join(repository.ErrScanningRowFailed, scanErr)
		}

		entity, decodeErr := s.decodePayload(payload)
		if decodeErr != nil {
			s.logError(ctx, logMsgDecodePayloadFailed, decodeErr)
			observer.recordError(errorTypeDecode)

			return nil, decodeErr
		}

		entities = append(entities, entity)
	}

	// The id column holds key text, whose lexicographic order differs from
	// the natural key order for numeric key types.
	slices.SortFunc(entities, func(a, b E) int {
		return cmp.Compare(a.Identity(), b.Identity())
	})

	observer.recordSuccess(len(entities))

	return entities, nil
}

// GetByID returns the entity stored under id,
// or repository.ErrEntityNotFound when no such entity exists.
func (s *Store[K, E]) GetByID(ctx context.Context, id K) (E, error) {
	var empty E

	observer, ctx := s.startReadObservation(ctx, operationGetByID)

	entity, found, err := s.lookupByID(ctx, observer, id)
	if err != nil {
		return empty, err
	}

	if !found {
		observer.recordStrictMiss()
		return empty, repository.ErrEntityNotFound
	}

	observer.recordSuccess(1)

	return entity, nil
}

// TryGetByID returns the entity stored under id and true,
// or the zero entity and false when no such entity exists.
func (s *Store[K, E]) TryGetByID(ctx context.Context, id K) (E, bool, error) {
	var empty E

	observer, ctx := s.startReadObservation(ctx, operationTryGetByID)

	entity, found, err := s.lookupByID(ctx, observer, id)
	if err != nil {
		return empty, false, err
	}

	if !found {
		observer.recordMiss()
		return empty, false, nil
	}

	observer.recordSuccess(1)

	return entity, true, nil
}

// lookupByID runs the single entity select shared by the strict and the
// tolerant lookup.
func (s *Store[K, E]) lookupByID(ctx context.Context, observer *readObserver[K, E], id K) (E, bool, error) {
	var empty E

	sqlQuery, buildErr := s.buildSelectByIDQuery(id)
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr)
		observer.recordError(errorTypeBuildQuery)

		return empty, false, buildErr
	}

	rows, execErr := s.executeQuery(ctx, observer, sqlQuery)
	if execErr != nil {
		return empty, false, execErr
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		return empty, false, nil
	}

	var payload []byte

	if scanErr := rows.Scan(&payload); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		observer.recordError(errorTypeScanRow)

		return empty, false, errors.Join(repository.ErrScanningRowFailed, scanErr)
	}

	entity, decodeErr := s.decodePayload(payload)
	if decodeErr != nil {
		s.logError(ctx, logMsgDecodePayloadFailed, decodeErr)
		observer.recordError(errorTypeDecode)

		return empty, false, decodeErr
	}

	return entity, true, nil
}

// Add inserts a new entity,
// or returns repository.ErrEntityAlreadyExists when its identity is already taken.
func (s *Store[K, E]) Add(ctx context.Context, entity E) error {
	observer, ctx := s.startWriteObservation(ctx, operationAdd)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildInsertQuery(entity, false)
	})
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		observer.recordPreconditionFailure(preconditionExists)
		return repository.ErrEntityAlreadyExists
	}

	observer.recordSuccess(rowsAffected)

	return nil
}

// AddOrUpdate inserts the entity or replaces the stored state under the same identity.
func (s *Store[K, E]) AddOrUpdate(ctx context.Context, entity E) error {
	observer, ctx := s.startWriteObservation(ctx, operationAddOrUpdate)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildInsertQuery(entity, true)
	})
	if err != nil {
		return err
	}

	observer.recordSuccess(rowsAffected)

	return nil
}

// Update replaces the stored state of an existing entity,
// or returns repository.ErrEntityNotFound when its identity is unknown.
func (s *Store[K, E]) Update(ctx context.Context, entity E) error {
	observer, ctx := s.startWriteObservation(ctx, operationUpdate)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildUpdateQuery(entity)
	})
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		observer.recordPreconditionFailure(preconditionNotFound)
		return repository.ErrEntityNotFound
	}

	observer.recordSuccess(rowsAffected)

	return nil
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

func (s *Store[K, E]) removeByID(ctx context.Context, operation string, id K) error {
	observer, ctx := s.startWriteObservation(ctx, operation)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildDeleteQuery(id)
	})
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		observer.recordPreconditionFailure(preconditionNotFound)
		return repository.ErrEntityNotFound
	}

	observer.recordSuccess(rowsAffected)

	return nil
}

// TryAdd inserts a new entity and reports whether the insert happened.
// An already taken identity is a normal false outcome, not an error.
func (s *Store[K, E]) TryAdd(ctx context.Context, entity E) (bool, error) {
	observer, ctx := s.startWriteObservation(ctx, operationTryAdd)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildInsertQuery(entity, false)
	})
	if err != nil {
		return false, err
	}

	observer.recordSuccess(rowsAffected)

	return rowsAffected > 0, nil
}

// TryUpdate replaces the stored state of an existing entity and reports
// whether an entity was updated. An unknown identity is a normal false
// outcome, not an error.
func (s *Store[K, E]) TryUpdate(ctx context.Context, entity E) (bool, error) {
	observer, ctx := s.startWriteObservation(ctx, operationTryUpdate)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildUpdateQuery(entity)
	})
	if err != nil {
		return false, err
	}

	observer.recordSuccess(rowsAffected)

	return rowsAffected > 0, nil
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

func (s *Store[K, E]) tryRemoveByID(ctx context.Context, operation string, id K) (bool, error) {
	observer, ctx := s.startWriteObservation(ctx, operation)

	rowsAffected, err := s.runWrite(ctx, observer, func() (sqlQueryString, error) {
		return s.buildDeleteQuery(id)
	})
	if err != nil {
		return false, err
	}

	observer.recordSuccess(rowsAffected)

	return rowsAffected > 0, nil
}

// executeQuery executes the SQL query, records timing on the observer, and
// logs the outcome.
func (s *Store[K, E]) executeQuery(
	ctx context.Context,
	observer *readObserver[K, E],
	sqlQuery sqlQueryString,
) (adapters.DBRows, error) {

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	observer.duration = duration
	s.logQueryWithDuration(ctx, sqlQuery, observer.operation, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		observer.recordError(errorTypeQuery)

		return nil, errors.Join(repository.ErrQueryFailed, queryErr)
	}

	return rows, nil
}

// runWrite builds one write statement, executes it, and returns the affected
// row count; the caller derives the operation outcome from that count.
func (s *Store[K, E]) runWrite(
	ctx context.Context,
	observer *writeObserver[K, E],
	buildQuery func() (sqlQueryString, error),
) (rowsAffectedInt64, error) {

	sqlQuery, buildErr := buildQuery()
	if buildErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildErr)
		observer.recordError(buildErrorType(buildErr))

		return 0, buildErr
	}

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	observer.duration = duration
	s.logQueryWithDuration(ctx, sqlQuery, observer.operation, duration)

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		observer.recordError(errorTypeExec)

		return 0, errors.Join(repository.ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		observer.recordError(errorTypeRowsAffected)

		return 0, errors.Join(repository.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store[K, E]) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (s *Store[K, E]) buildCountQuery() (sqlQueryString, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(goqu.COUNT(goqu.Star()))

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(repository.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store[K, E]) buildSelectAllQuery() (sqlQueryString, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colPayload).
		Order(goqu.I(colID).Asc())

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(repository.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store[K, E]) buildSelectByIDQuery(id K) (sqlQueryString, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colPayload).
		Where(goqu.Ex{colID: s.idText(id)})

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(repository.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store[K, E]) buildInsertQuery(entity E, updateOnConflict bool) (sqlQueryString, error) {
	payload, encodeErr := s.encodePayload(entity)
	if encodeErr != nil {
		return "", encodeErr
	}

	stmt := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Rows(goqu.Record{
			colID:      s.idText(entity.Identity()),
			colPayload: goqu.L(castJsonb, payload),
		})

	if updateOnConflict {
		stmt = stmt.OnConflict(goqu.DoUpdate(colID, goqu.Record{
			colPayload: goqu.L(castJsonb, payload),
		}))
	} else {
		stmt = stmt.OnConflict(goqu.DoNothing())
	}

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(repository.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store[K, E]) buildUpdateQuery(entity E) (sqlQueryString, error) {
	payload, encodeErr := s.encodePayload(entity)
	if encodeErr != nil {
		return "", encodeErr
	}

	stmt := goqu.Dialect(dialectPostgres).
		Update(s.tableName).
		Set(goqu.Record{colPayload: goqu.L(castJsonb, payload)}).
		Where(goqu.Ex{colID: s.idText(entity.Identity())})

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(repository.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store[K, E]) buildDeleteQuery(id K) (sqlQueryString, error) {
	stmt := goqu.Dialect(dialectPostgres).
		Delete(s.tableName).
		Where(goqu.Ex{colID: s.idText(id)})

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(repository.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// idText renders an identity as the text stored in the id column.
func (s *Store[K, E]) idText(id K) string {
	return fmt.Sprint(id)
}

// encodePayload serializes an entity for the jsonb payload column.
func (s *Store[K, E]) encodePayload(entity E) (string, error) {
	payload, marshalErr := codec.JSON.Marshal(entity)
	if marshalErr != nil {
		return "", errors.Join(repository.ErrEncodingPayloadFailed, marshalErr)
	}

	return string(payload), nil
}

// decodePayload deserializes an entity from the jsonb payload column.
func (s *Store[K, E]) decodePayload(payload []byte) (E, error) {
	var entity E

	if unmarshalErr := codec.JSON.Unmarshal(payload, &entity); unmarshalErr != nil {
		return entity, errors.Join(repository.ErrDecodingPayloadFailed, unmarshalErr)
	}

	return entity, nil
}

func buildErrorType(err error) string {
	if errors.Is(err, repository.ErrEncodingPayloadFailed) {
		return errorTypeEncode
	}

	return errorTypeBuildQuery
}

// probe pins the engine to its contract at compile time.
type probe struct{ id string }

func (p probe) Identity() string { return p.id }

// Ensure the store implements the full repository contract.
var _ repository.Repository[string, probe] = (*Store[string, probe])(nil)
