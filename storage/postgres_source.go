package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"delivery-insights/models"
	"delivery-insights/utils"
)

const ordersTable = "delivery_orders"

// pgColumns are the table columns in AllColumns order.
var pgColumns = []string{
	"id", "delivery_person_id", "delivery_person_age", "delivery_person_ratings",
	"restaurant_latitude", "restaurant_longitude",
	"delivery_location_latitude", "delivery_location_longitude",
	"order_date", "time_ordered", "time_order_picked", "weather_conditions",
	"road_traffic_density", "vehicle_condition", "type_of_order", "type_of_vehicle",
	"multiple_deliveries", "festival", "city", "time_taken",
}

// PostgresSource reads the raw order table from PostgreSQL. Every column is
// TEXT so values arrive exactly as they were imported.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a connection and waits for the server to answer,
// retrying the ping with back-off.
func NewPostgresSource(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &models.LoadError{Source: "postgres", Err: err}
	}

	if err := retry.Do(ctx, "postgres ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, &models.LoadError{Source: "postgres", Err: err}
	}

	return NewPostgresSourceFromDB(db), nil
}

// NewPostgresSourceFromDB wraps an existing connection pool.
func NewPostgresSourceFromDB(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func migrate(ctx context.Context, db execer) error {
	defs := make([]string, len(pgColumns))
	for i, c := range pgColumns {
		defs[i] = c + " TEXT NOT NULL DEFAULT ''"
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			row_num INTEGER PRIMARY KEY,
			%s
		)`, ordersTable, strings.Join(defs, ",\n\t\t\t")))
	return err
}

// Seed replaces the table content with raw, creating the table if needed.
// It runs in one transaction, so a failed seed leaves the previous content.
func (ps *PostgresSource) Seed(ctx context.Context, raw []*models.RawRecord) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if err := migrate(ctx, tx); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+ordersTable); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(raw); i += batchSize {
		end := i + batchSize
		if end > len(raw) {
			end = len(raw)
		}
		if err := insertBatch(ctx, tx, raw[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, db execer, batch []*models.RawRecord) error {
	width := len(pgColumns) + 1
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx, r := range batch {
		placeholders := make([]string, width)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", idx*width+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, r.Row)
		for _, v := range recordValues(r) {
			valueArgs = append(valueArgs, v)
		}
	}

	query := fmt.Sprintf(`INSERT INTO %s (row_num, %s) VALUES %s`,
		ordersTable, strings.Join(pgColumns, ", "), strings.Join(valueStrings, ","))

	_, err := db.ExecContext(ctx, query, valueArgs...)
	return err
}

// Load retrieves every stored row ordered by row number.
func (ps *PostgresSource) Load(ctx context.Context) ([]*models.RawRecord, error) {
	rows, err := ps.db.QueryContext(ctx, fmt.Sprintf(`SELECT row_num, %s FROM %s ORDER BY row_num`,
		strings.Join(pgColumns, ", "), ordersTable))
	if err != nil {
		return nil, &models.LoadError{Source: "postgres", Err: err}
	}
	defer rows.Close()

	var records []*models.RawRecord
	for rows.Next() {
		var row int
		values := make([]string, len(pgColumns))
		dest := make([]interface{}, 0, len(values)+1)
		dest = append(dest, &row)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &models.LoadError{Source: "postgres", Err: fmt.Errorf("scan row: %w", err)}
		}

		byName := make(map[string]string, len(values))
		for i, col := range AllColumns {
			byName[col] = values[i]
		}
		records = append(records, recordFromColumns(row, func(col string) string { return byName[col] }))
	}
	if err := rows.Err(); err != nil {
		return nil, &models.LoadError{Source: "postgres", Err: err}
	}
	return records, nil
}

// Identity combines the row count and the highest row number.
func (ps *PostgresSource) Identity(ctx context.Context) (string, error) {
	var count, maxRow int64
	err := ps.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*), COALESCE(MAX(row_num), 0) FROM %s`, ordersTable)).
		Scan(&count, &maxRow)
	if err != nil {
		return "", &models.LoadError{Source: "postgres", Err: err}
	}
	return fmt.Sprintf("postgres:%s:%d:%d", ordersTable, count, maxRow), nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
