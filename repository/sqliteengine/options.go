package sqliteengine

import (
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/codec"
)

// config collects the adjustable parts of a Store before the generic store
// is built, so options stay free of type parameters.
type config struct {
	tableName string
	logger    repository.Logger
	codec     codec.Codec
}

func defaultConfig() config {
	return config{
		tableName: defaultTableName,
		codec:     codec.JSON,
	}
}

// Option defines a functional option for configuring a Store.
type Option func(*config) error

// WithTableName sets the table name for the Store.
func WithTableName(tableName string) Option {
	return func(c *config) error {
		if tableName == "" {
			return repository.ErrEmptyTableName
		}

		c.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive SQL statements with execution timing at debug
// level and operation outcomes at info level.
func WithLogger(logger repository.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithCodec sets the codec used to serialize entities into the payload
// column. The default is the JSON codec.
func WithCodec(entityCodec codec.Codec) Option {
	return func(c *config) error {
		if entityCodec == nil {
			return repository.ErrNilCodec
		}

		c.codec = entityCodec

		return nil
	}
}
