package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/astroshield/go-impact-sim/internal/report"
)

// ErrNotFound is returned when a simulation ID has no stored report.
var ErrNotFound = errors.New("simulation not found")

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS simulations (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			target_type TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			energy_megatons REAL NOT NULL,
			seismic_magnitude REAL NOT NULL,
			is_airburst INTEGER NOT NULL,
			alert_level TEXT NOT NULL,
			report_json BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_simulations_created_at ON simulations(created_at);
		CREATE INDEX IF NOT EXISTS idx_simulations_energy ON simulations(energy_megatons);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Add(ctx context.Context, r *report.Report) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, r.Metadata.GeneratedAt)
	if err != nil {
		return fmt.Errorf("error parsing report timestamp: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO simulations
			(id, created_at, target_type, latitude, longitude,
			 energy_megatons, seismic_magnitude, is_airburst, alert_level, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Metadata.ID,
		createdAt.UTC(),
		string(r.Parameters.TargetType),
		r.Parameters.Latitude,
		r.Parameters.Longitude,
		r.Effects.EnergyMegatonsTNT,
		r.Effects.SeismicMagnitude,
		r.Effects.IsAirburst,
		string(r.AlertLevel),
		blob,
	)
	if err != nil {
		return fmt.Errorf("error inserting simulation: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*report.Report, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM simulations WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying simulation: %w", err)
	}

	var r report.Report
	if err := json.Unmarshal(blob, &r); err != nil {
		return nil, fmt.Errorf("error decoding report: %w", err)
	}
	return &r, nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM simulations WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking simulation existence: %w", err)
	}
	return true, nil
}

func (s *SQLiteDB) List(ctx context.Context, opts Filter) ([]Summary, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, created_at, target_type, latitude, longitude,
		       energy_megatons, seismic_magnitude, is_airburst, alert_level
		FROM simulations WHERE 1=1`)

	var args []any
	if opts.Since != nil {
		query.WriteString(" AND created_at >= ?")
		args = append(args, opts.Since.UTC())
	}
	if opts.Airburst != nil {
		query.WriteString(" AND is_airburst = ?")
		args = append(args, *opts.Airburst)
	}
	if opts.MinEnergyMT != nil {
		query.WriteString(" AND energy_megatons >= ?")
		args = append(args, *opts.MinEnergyMT)
	}
	if opts.TargetType != "" {
		query.WriteString(" AND target_type = ?")
		args = append(args, opts.TargetType)
	}

	query.WriteString(" ORDER BY created_at DESC")
	if opts.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing simulations: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(
			&sum.ID, &sum.CreatedAt, &sum.TargetType, &sum.Latitude, &sum.Longitude,
			&sum.EnergyMegatons, &sum.SeismicMagnitude, &sum.IsAirburst, &sum.AlertLevel,
		); err != nil {
			return nil, fmt.Errorf("error scanning simulation row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
