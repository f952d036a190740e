package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"barkday/internal/domain/calculations"
)

var (
	ErrNotFound = fmt.Errorf("memory: %w", calculations.ErrNotFound)
)

type runRepo struct {
	mu   sync.RWMutex
	byID map[string]calculations.Run
}

func NewRunRepo() calculations.Repository {
	return &runRepo{
		byID: make(map[string]calculations.Run),
	}
}

func (r *runRepo) Create(ctx context.Context, run calculations.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id required")
	}
	if _, exists := r.byID[run.ID]; exists {
		return errors.New("run already exists")
	}
	r.byID[run.ID] = run
	return nil
}

func (r *runRepo) GetByID(ctx context.Context, id string) (calculations.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.byID[id]
	if !ok {
		return calculations.Run{}, ErrNotFound
	}
	return run, nil
}

func (r *runRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]calculations.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]calculations.Run, 0)
	for _, run := range r.byID {
		if run.OwnerUserID == ownerUserID {
			out = append(out, run)
		}
	}

	// más nuevo primero, id como desempate para que el orden sea estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
