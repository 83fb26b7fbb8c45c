package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

const maintenanceDB = "postgres"

var errNoDatabaseName = errors.New("connection string names no database")

// CreateDatabaseIfNotExists makes sure the database addressed by connString
// exists. The check and the CREATE run against the server's maintenance
// database.
func CreateDatabaseIfNotExists(ctx context.Context, connString string) error {
	name, adminConn, err := splitDatabase(connString)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}

	admin, err := sql.Open("postgres", adminConn)
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	const q = "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := admin.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up database %q: %w", name, err)
	}
	if exists {
		return nil
	}

	slog.Info("creating database", slog.String("database", name))
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("failed to create database %q: %w", name, err)
	}
	return nil
}

// splitDatabase returns the database named in connString together with an
// equivalent connection string aimed at the maintenance database. Both URL
// and key=value forms are understood.
func splitDatabase(connString string) (name, adminConn string, err error) {
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		u, err := url.Parse(connString)
		if err != nil {
			return "", "", err
		}
		name = strings.TrimPrefix(u.Path, "/")
		if name == "" {
			return "", "", errNoDatabaseName
		}
		u.Path = "/" + maintenanceDB
		return name, u.String(), nil
	}

	fields := strings.Fields(connString)
	for i, kv := range fields {
		if v, ok := strings.CutPrefix(kv, "dbname="); ok {
			name = v
			fields[i] = "dbname=" + maintenanceDB
		}
	}
	if name == "" {
		return "", "", errNoDatabaseName
	}
	return name, strings.Join(fields, " "), nil
}
