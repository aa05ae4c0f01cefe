// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package license

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/omar46/sultans-admin/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] for development mode and
// tests. It mirrors the Postgres contract, including the NOT_FOUND and
// ALREADY_EXISTS error mapping.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int
	codes  map[string]*Code
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, codes: make(map[string]*Code)}
}

func (repository *MemoryRepository) GetByCode(_ context.Context, code string) (*Code, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.codes[code]
	if !ok {
		return nil, apperr.NotFound("license code")
	}
	clone := *stored
	return &clone, nil
}

func (repository *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Code, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	all := make([]*Code, 0, len(repository.codes))
	for _, stored := range repository.codes {
		clone := *stored
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []*Code{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repository *MemoryRepository) Create(_ context.Context, code *Code) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.codes[code.Code]; exists {
		return apperr.AlreadyExists("A code with this value already exists")
	}

	now := time.Now().UTC()
	code.ID = repository.nextID
	repository.nextID++
	code.CreatedAt = now
	code.UpdatedAt = now

	clone := *code
	repository.codes[code.Code] = &clone
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, code string, input UpdateInput) (*Code, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.codes[code]
	if !ok {
		return nil, apperr.NotFound("license code")
	}

	if input.BuyerName != nil {
		stored.BuyerName = *input.BuyerName
	}
	if input.Contact != nil {
		stored.Contact = *input.Contact
	}
	if input.Status != nil {
		stored.Status = *input.Status
	}
	if input.DurationMonths != nil {
		stored.DurationMonths = *input.DurationMonths
		stored.EndAt = AddMonths(stored.StartAt, *input.DurationMonths)
	}
	stored.UpdatedAt = time.Now().UTC()

	clone := *stored
	return &clone, nil
}

func (repository *MemoryRepository) SetStatus(_ context.Context, code string, status Status) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.codes[code]
	if !ok {
		return apperr.NotFound("license code")
	}
	stored.Status = status
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, code string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.codes[code]; !ok {
		return apperr.NotFound("license code")
	}
	delete(repository.codes, code)
	return nil
}

func (repository *MemoryRepository) Extend(_ context.Context, code string, months int, now time.Time) (*Code, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.codes[code]
	if !ok {
		return nil, apperr.NotFound("license code")
	}

	stored.DurationMonths += months
	stored.EndAt = AddMonths(stored.EndAt, months)
	stored.UpdatedAt = now.UTC()

	clone := *stored
	return &clone, nil
}
