package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"pricewatch/models"
)

// PostgresWriter persists violation records to PostgreSQL so sweeps can be
// compared over time.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS violations (
			id               SERIAL PRIMARY KEY,
			venue            VARCHAR(100) NOT NULL,
			room             VARCHAR(100) NOT NULL,
			slot_date        VARCHAR(10)  NOT NULL,
			slot             VARCHAR(50)  NOT NULL,
			price_per_person INTEGER      NOT NULL,
			expected_price   NUMERIC(8,2) NOT NULL,
			total_price      TEXT         NOT NULL DEFAULT '',
			detected_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_violations_venue ON violations(venue);
		CREATE INDEX IF NOT EXISTS idx_violations_date  ON violations(slot_date);
	`)
	return err
}

// Write batch-inserts all violations of one sweep.
func (pw *PostgresWriter) Write(violations []models.Violation) error {
	if len(violations) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(violations); i += batchSize {
		end := i + batchSize
		if end > len(violations) {
			end = len(violations)
		}
		if err := pw.insertBatch(violations[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []models.Violation) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, v := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			v.VenueName, v.RoomName, v.Date.String(), v.TimeLabel,
			v.PricePerPerson, v.ExpectedPrice, v.TotalPrice)
	}

	query := fmt.Sprintf(`
		INSERT INTO violations (venue, room, slot_date, slot, price_per_person, expected_price, total_price)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored violations — used by the summary service.
func (pw *PostgresWriter) FetchAll() ([]models.Violation, error) {
	rows, err := pw.db.Query(`
		SELECT venue, room, slot_date, slot, price_per_person, expected_price, total_price
		FROM violations
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var violations []models.Violation
	for rows.Next() {
		var v models.Violation
		var date string
		if err := rows.Scan(
			&v.VenueName, &v.RoomName, &date, &v.TimeLabel,
			&v.PricePerPerson, &v.ExpectedPrice, &v.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if v.Date, err = models.ParseDate(date); err != nil {
			return nil, fmt.Errorf("postgres: stored date: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}
