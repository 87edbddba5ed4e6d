package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/postgresengine"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/fixtures"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/testutil/postgresengine/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const defaultTestTable = "entities"

// Store is the concrete store type the integration tests run against.
type Store = postgresengine.Store[string, fixtures.Document]

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetStore() *Store
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *Store
}

func (w *PGXPoolWrapper) GetStore() *Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// PGXPoolReplicaWrapper wraps pgxpool-based testing with a primary and a replica pool.
type PGXPoolReplicaWrapper struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
	store   *Store
}

func (w *PGXPoolReplicaWrapper) GetStore() *Store {
	return w.store
}

func (w *PGXPoolReplicaWrapper) Close() {
	w.primary.Close()
	w.replica.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store *Store
}

func (w *SQLDBWrapper) GetStore() *Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store *Store
}

func (w *SQLXWrapper) GetStore() *Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the
// ADAPTER_TYPE environment variable and makes sure the default test table exists.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := postgresengine.NewStoreFromPGXPool[string, fixtures.Document](connPool, options...)
		assert.NoError(t, err, "error creating store")

		wrapper := &PGXPoolWrapper{pool: connPool, store: store}
		CreateEntitiesTable(t, wrapper, defaultTestTable)

		return wrapper

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		store, err := postgresengine.NewStoreFromSQLDB[string, fixtures.Document](db, options...)
		assert.NoError(t, err, "error creating store")

		wrapper := &SQLDBWrapper{db: db, store: store}
		CreateEntitiesTable(t, wrapper, defaultTestTable)

		return wrapper

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		store, err := postgresengine.NewStoreFromSQLX[string, fixtures.Document](db, options...)
		assert.NoError(t, err, "error creating store")

		wrapper := &SQLXWrapper{db: db, store: store}
		CreateEntitiesTable(t, wrapper, defaultTestTable)

		return wrapper

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// CreateWrapperWithReplicaTestConfig creates a pgx-based wrapper whose store
// routes eventually consistent reads through a dedicated replica pool. Both
// pools point at the single test database, so replica reads observe all writes.
func CreateWrapperWithReplicaTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	primaryPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
	assert.NoError(t, err, "error connecting to primary DB pool in test setup")

	replicaPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
	assert.NoError(t, err, "error connecting to replica DB pool in test setup")

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica[string, fixtures.Document](primaryPool, replicaPool, options...)
	assert.NoError(t, err, "error creating store")

	wrapper := &PGXPoolReplicaWrapper{primary: primaryPool, replica: replicaPool, store: store}
	CreateEntitiesTable(t, wrapper, defaultTestTable)

	return wrapper
}

// TryCreateStoreWithTableName tries to create a store with the given table name
// and returns the error (for testing error cases).
func TryCreateStoreWithTableName(t testing.TB, tableName string) error {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	options := []postgresengine.Option{postgresengine.WithTableName(tableName)}

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")
		defer connPool.Close()

		_, err = postgresengine.NewStoreFromPGXPool[string, fixtures.Document](connPool, options...)
		return err

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()
		defer func(db *sql.DB) {
			_ = db.Close() // makes no sense to handle this
		}(db)

		_, err := postgresengine.NewStoreFromSQLDB[string, fixtures.Document](db, options...)
		return err

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()
		defer func(db *sqlx.DB) {
			_ = db.Close() // makes no sense to handle this
		}(db)

		_, err := postgresengine.NewStoreFromSQLX[string, fixtures.Document](db, options...)
		return err

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// CreateEntitiesTable creates an entity table with the given name if it does not exist yet.
func CreateEntitiesTable(t testing.TB, wrapper Wrapper, tableName string) {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, payload JSONB NOT NULL)`, tableName)
	execOnWrapper(t, wrapper, ddl, "error creating the entity table")
}

// DropEntitiesTable drops the entity table with the given name.
func DropEntitiesTable(t testing.TB, wrapper Wrapper, tableName string) {
	ddl := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tableName)
	execOnWrapper(t, wrapper, ddl, "error dropping the entity table")
}

// CleanUp removes all rows from the default test table for the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	execOnWrapper(t, wrapper, "TRUNCATE TABLE "+defaultTestTable, "error cleaning up the entity table")
}

// execOnWrapper runs a statement on the raw database handle behind the given wrapper.
func execOnWrapper(t testing.TB, wrapper Wrapper, query string, failureMsg string) {
	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := w.pool.Exec(context.Background(), query)
		assert.NoError(t, err, failureMsg)

	case *PGXPoolReplicaWrapper:
		_, err := w.primary.Exec(context.Background(), query)
		assert.NoError(t, err, failureMsg)

	case *SQLDBWrapper:
		_, err := w.db.Exec(query)
		assert.NoError(t, err, failureMsg)

	case *SQLXWrapper:
		_, err := w.db.Exec(query)
		assert.NoError(t, err, failureMsg)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}
}
