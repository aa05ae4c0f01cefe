// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package war

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/dberr"
)

// MemoryRepository is an in-memory Repository used by tests and local
// development.
type MemoryRepository struct {
	mu         sync.RWMutex
	wars       map[string]*War
	schedules  map[string]*Schedule
	attendance map[string]map[string]*AttendanceRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		wars:       make(map[string]*War),
		schedules:  make(map[string]*Schedule),
		attendance: make(map[string]map[string]*AttendanceRecord),
	}
}

func (repository *MemoryRepository) Get(_ context.Context, id string) (*War, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	w, ok := repository.wars[id]
	if !ok {
		return nil, dberr.Wrap(pgx.ErrNoRows, "get_war")
	}
	copied := *w
	return &copied, nil
}

func (repository *MemoryRepository) List(_ context.Context) ([]*War, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	wars := make([]*War, 0, len(repository.wars))
	for _, w := range repository.wars {
		copied := *w
		wars = append(wars, &copied)
	}
	sort.Slice(wars, func(i, j int) bool {
		return wars[i].Date.After(wars[j].Date)
	})
	return wars, nil
}

func (repository *MemoryRepository) Create(_ context.Context, war *War) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	war.CreatedAt = time.Now().UTC()
	copied := *war
	repository.wars[war.ID] = &copied
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, war *War) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.wars[war.ID]
	if !ok {
		return dberr.Wrap(pgx.ErrNoRows, "update_war")
	}
	war.CreatedAt = existing.CreatedAt
	copied := *war
	repository.wars[war.ID] = &copied
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.wars[id]; !ok {
		return dberr.Wrap(pgx.ErrNoRows, "delete_war")
	}
	delete(repository.wars, id)
	delete(repository.schedules, id)
	delete(repository.attendance, id)
	return nil
}

func (repository *MemoryRepository) GetSchedule(_ context.Context, warID string) (*Schedule, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	schedule, ok := repository.schedules[warID]
	if !ok {
		return nil, dberr.Wrap(pgx.ErrNoRows, "get_war_schedule")
	}
	copied := *schedule
	return &copied, nil
}

func (repository *MemoryRepository) SaveSchedule(_ context.Context, schedule *Schedule) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	schedule.UpdatedAt = time.Now().UTC()
	copied := *schedule
	repository.schedules[schedule.WarID] = &copied
	return nil
}

func (repository *MemoryRepository) ListAttendance(_ context.Context, warID string) ([]*AttendanceRecord, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	records := make([]*AttendanceRecord, 0, len(repository.attendance[warID]))
	for _, record := range repository.attendance[warID] {
		copied := *record
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RegisteredAt.Before(records[j].RegisteredAt)
	})
	return records, nil
}

func (repository *MemoryRepository) Register(_ context.Context, record *AttendanceRecord) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	byCastle, ok := repository.attendance[record.WarID]
	if !ok {
		byCastle = make(map[string]*AttendanceRecord)
		repository.attendance[record.WarID] = byCastle
	}
	if _, exists := byCastle[record.CastleID]; exists {
		return apperr.AlreadyExists("This castle is already registered")
	}

	record.RegisteredAt = time.Now().UTC()
	copied := *record
	byCastle[record.CastleID] = &copied
	return nil
}

func (repository *MemoryRepository) RegisteredCastleIDs(_ context.Context, warID string) (map[string]bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	ids := make(map[string]bool)
	for castleID := range repository.attendance[warID] {
		ids[castleID] = true
	}
	return ids, nil
}
