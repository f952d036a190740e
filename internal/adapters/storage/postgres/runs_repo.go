package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"barkday/internal/domain/calculations"
)

type RunsRepo struct {
	db *sql.DB
}

func NewRunsRepo(db *sql.DB) *RunsRepo {
	return &RunsRepo{db: db}
}

func (r *RunsRepo) Create(ctx context.Context, run calculations.Run) error {
	input, err := json.Marshal(run.Input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	result, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, owner_user_id, name,
			input, result, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		run.ID,
		run.OwnerUserID,
		run.Name,
		input,
		result,
		run.CreatedAt,
	)
	return err
}

func (r *RunsRepo) GetByID(ctx context.Context, id string) (calculations.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return calculations.Run{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, name, input, result, created_at
		FROM runs
		WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calculations.Run{}, ErrNotFound
		}
		return calculations.Run{}, err
	}
	return run, nil
}

func (r *RunsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]calculations.Run, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, input, result, created_at
		FROM runs
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]calculations.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (calculations.Run, error) {
	var (
		run           calculations.Run
		input, result []byte
	)
	if err := s.Scan(
		&run.ID,
		&run.OwnerUserID,
		&run.Name,
		&input,
		&result,
		&run.CreatedAt,
	); err != nil {
		return calculations.Run{}, err
	}

	if err := json.Unmarshal(input, &run.Input); err != nil {
		return calculations.Run{}, fmt.Errorf("decode input of run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal(result, &run.Result); err != nil {
		return calculations.Run{}, fmt.Errorf("decode result of run %s: %w", run.ID, err)
	}
	return run, nil
}
