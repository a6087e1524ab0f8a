package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // Postgres driver
	"github.com/sirupsen/logrus"
	"github.com/trinodb/trino-go-client/trino"
)

const (
	DriverPostgres = "postgres"
	DriverTrino    = "trino"

	// TableName is the banks table, shared by both drivers.
	TableName = "banks"

	// tablePlaceholder is substituted in Trino schema files with the qualified table name.
	tablePlaceholder = "${table}"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

//go:embed schema/trino.sql
var trinoSchema string

// Config holds configuration for the registry database connection
type Config struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	ServerURI       string        `koanf:"server_uri"`
	Catalog         string        `koanf:"catalog"`
	Schema          string        `koanf:"schema"`
	SchemaFile      string        `koanf:"schema_file"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// Database provides a connection to the configured SQL backend
type Database struct {
	*sql.DB
	Config Config
}

// New opens a connection for the configured driver and brings the schema up to date
func New(config Config, logger logrus.FieldLogger) (*Database, error) {
	dsn, err := dataSourceName(config)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", config.Driver, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", config.Driver, err)
	}

	database := &Database{DB: db, Config: config}

	switch config.Driver {
	case DriverPostgres:
		err = Migrate(dsn, logger)
	case DriverTrino:
		if config.SchemaFile != "" {
			err = database.ExecuteSchema(config.SchemaFile, logger)
		} else {
			err = database.executeStatements(trinoSchema, logger)
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	return database, nil
}

func dataSourceName(config Config) (string, error) {
	switch config.Driver {
	case DriverPostgres:
		if config.DSN == "" {
			return "", errors.New("postgres dsn cannot be empty")
		}
		return config.DSN, nil
	case DriverTrino:
		trinoConfig := &trino.Config{
			ServerURI: config.ServerURI,
			Catalog:   config.Catalog,
			Schema:    config.Schema,
		}
		dsn, err := trinoConfig.FormatDSN()
		if err != nil {
			return "", fmt.Errorf("failed to build trino dsn: %w", err)
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", config.Driver)
	}
}

// QualifiedTableName returns the banks table name as the driver expects it in queries.
func (db *Database) QualifiedTableName() string {
	return QualifiedTableName(db.Config)
}

// QualifiedTableName returns catalog.schema.banks for Trino and banks for Postgres.
func QualifiedTableName(config Config) string {
	if config.Driver == DriverTrino && config.Catalog != "" && config.Schema != "" {
		return fmt.Sprintf("%s.%s.%s", config.Catalog, config.Schema, TableName)
	}
	return TableName
}

// Health pings the underlying connection.
func (db *Database) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Migrate applies the embedded Postgres migrations using a dedicated connection.
func Migrate(dsn string, logger logrus.FieldLogger) error {
	conn, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := pgmigrate.WithInstance(conn, &pgmigrate.Config{})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, DriverPostgres, driver)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	logger.Info("running migrations")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no migrations to run")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

// ExecuteSchema loads and executes a schema file statement by statement
func (db *Database) ExecuteSchema(filePath string, logger logrus.FieldLogger) error {
	logger.WithField("file", filePath).Info("executing schema")

	schemaSQL, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	return db.executeStatements(string(schemaSQL), logger)
}

// Trino does not support multi-statement execution.
func (db *Database) executeStatements(schemaSQL string, logger logrus.FieldLogger) error {
	schemaSQL = strings.ReplaceAll(schemaSQL, tablePlaceholder, db.QualifiedTableName())

	for _, query := range strings.Split(schemaSQL, ";") {
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}

		logger.WithField("query", query).Debug("executing statement")
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %s, error: %w", query, err)
		}
	}

	logger.Info("schema successfully executed")
	return nil
}
