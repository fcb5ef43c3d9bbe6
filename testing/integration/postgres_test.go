package integration

import (
	"context"
	"testing"
)

// Exec executes a SQL statement.
func (pc *PostgresContainer) Exec(ctx context.Context, t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := pc.conn.Exec(ctx, sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// CountRows runs query and returns the number of rows it produced.
func (pc *PostgresContainer) CountRows(ctx context.Context, t *testing.T, query string) int {
	t.Helper()
	rows, err := pc.conn.Query(ctx, query)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, query)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to read rows: %v\nSQL: %s", err, query)
	}
	return n
}

// setupPostgresSchema recreates and seeds the test database schema.
func setupPostgresSchema(ctx context.Context, t *testing.T, pc *PostgresContainer) {
	t.Helper()

	pc.Exec(ctx, t, `DROP TABLE IF EXISTS orders, posts, users CASCADE`)

	pc.Exec(ctx, t, `
		CREATE TABLE users (
			id BIGINT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			age INT,
			active BOOLEAN DEFAULT true
		)
	`)

	pc.Exec(ctx, t, `
		CREATE TABLE posts (
			id BIGINT PRIMARY KEY,
			user_id BIGINT REFERENCES users(id),
			title VARCHAR(255) NOT NULL,
			views INT DEFAULT 0,
			published BOOLEAN DEFAULT false
		)
	`)

	pc.Exec(ctx, t, `
		CREATE TABLE orders (
			id BIGINT PRIMARY KEY,
			user_id BIGINT REFERENCES users(id),
			total NUMERIC(10,2) NOT NULL,
			status VARCHAR(50) NOT NULL
		)
	`)

	for _, stmt := range seedStatements {
		pc.Exec(ctx, t, stmt)
	}
}

func TestPostgres_RenderedQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := getPostgresContainer(t)
	setupPostgresSchema(ctx, t, pc)

	for _, qc := range queryCases {
		t.Run(qc.name, func(t *testing.T) {
			switch {
			case qc.backslash:
				t.Skip("PostgreSQL uses standard conforming strings")
			case qc.commaLimit:
				t.Skip("PostgreSQL has no LIMIT offset,count form")
			}

			sql := renderCase(t, qc)
			if got := pc.CountRows(ctx, t, sql); got != qc.rows {
				t.Errorf("Expected %d rows, got %d\nSQL: %s", qc.rows, got, sql)
			}
		})
	}
}
