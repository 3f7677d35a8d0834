package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

// Run is a persisted parse batch.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Language   string    `json:"language"`
	Confidence float64   `json:"confidence"`
	ItemCount  int       `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SaveRun persists a parse response and returns the stored run. Projects are
// stored as JSON documents in input order.
func (s *SQLiteStorage) SaveRun(ctx context.Context, resp model.ParseResponse) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		Source:     string(resp.Metadata.Source),
		Language:   resp.Metadata.Language,
		Confidence: resp.Metadata.Confidence,
		ItemCount:  resp.Metadata.ItemCount,
		CreatedAt:  resp.Metadata.ParsedAt,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO parse_runs (id, source, language, confidence, item_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Language, run.Confidence, run.ItemCount, run.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, project := range resp.Projects {
		document, err := json.Marshal(project)
		if err != nil {
			return Run{}, fmt.Errorf("failed to marshal project %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO parsed_projects (run_id, position, document) VALUES (?, ?, ?)`,
			run.ID, i, string(document))
		if err != nil {
			return Run{}, fmt.Errorf("failed to insert project %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, language, confidence, item_count, created_at
		 FROM parse_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.Language, &run.Confidence, &run.ItemCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun returns one run and its stored projects in input order.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (Run, []model.ParsedProject, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, language, confidence, item_count, created_at
		 FROM parse_runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Source, &run.Language, &run.Confidence, &run.ItemCount, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: run %s", common.ErrNotFound, id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT document FROM parsed_projects WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []model.ParsedProject
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return Run{}, nil, fmt.Errorf("failed to scan project: %w", err)
		}
		var project model.ParsedProject
		if err := json.Unmarshal([]byte(document), &project); err != nil {
			return Run{}, nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		projects = append(projects, project)
	}

	return run, projects, rows.Err()
}
