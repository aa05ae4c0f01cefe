// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package castle

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/omar46/sultans-admin/internal/platform/dberr"
)

// MemoryRepository is an in-memory Repository used by tests and local
// development.
type MemoryRepository struct {
	mu      sync.RWMutex
	castles map[string]*Castle
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{castles: make(map[string]*Castle)}
}

// sorted returns the roster ordered by rank then name, matching the
// Postgres ordering.
func (repository *MemoryRepository) sorted() []*Castle {
	all := make([]*Castle, 0, len(repository.castles))
	for _, c := range repository.castles {
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rank != all[j].Rank {
			return all[i].Rank < all[j].Rank
		}
		return all[i].Name < all[j].Name
	})
	return all
}

func (repository *MemoryRepository) Get(_ context.Context, id string) (*Castle, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	c, ok := repository.castles[id]
	if !ok {
		return nil, dberr.Wrap(pgx.ErrNoRows, "get_castle")
	}
	copied := *c
	return &copied, nil
}

func (repository *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Castle, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	all := repository.sorted()
	total := len(all)
	if offset >= total {
		return []*Castle{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repository *MemoryRepository) GetAll(_ context.Context) ([]*Castle, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return repository.sorted(), nil
}

func (repository *MemoryRepository) Totals(_ context.Context) (Totals, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	totals := Totals{CastlesCount: len(repository.castles)}
	for _, c := range repository.castles {
		totals.BarracksArmorSum += c.BarracksArmor
		totals.ArchersArmorSum += c.ArchersArmor
		if c.WarReady() {
			totals.WarReadyCount++
		}
	}
	return totals, nil
}

func (repository *MemoryRepository) Create(_ context.Context, castle *Castle) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	castle.CreatedAt = now
	castle.UpdatedAt = now

	copied := *castle
	repository.castles[castle.ID] = &copied
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, castle *Castle) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.castles[castle.ID]
	if !ok {
		return dberr.Wrap(pgx.ErrNoRows, "update_castle")
	}
	castle.CreatedAt = existing.CreatedAt
	castle.UpdatedAt = time.Now().UTC()

	copied := *castle
	repository.castles[castle.ID] = &copied
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.castles[id]; !ok {
		return dberr.Wrap(pgx.ErrNoRows, "delete_castle")
	}
	delete(repository.castles, id)
	return nil
}
