// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package directory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// Memory is an in-process [Directory] used in development mode and in
// tests. Accounts live in a map guarded by a mutex; passwords are stored
// as bcrypt hashes so VerifyPassword behaves like the real provider.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]*memoryAccount

	// writes counts mutating calls (create, update, delete, set-claims).
	// Tests use it to assert that idempotent sweeps perform no writes on
	// a second run.
	writes int
}

type memoryAccount struct {
	user         User
	passwordHash string
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*memoryAccount)}
}

// Writes returns the number of mutating calls performed so far.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// findByEmail returns the account with the given normalized email, or nil.
// Caller must hold m.mu.
func (m *Memory) findByEmail(email string) *memoryAccount {
	for _, account := range m.accounts {
		if account.user.Email == email {
			return account
		}
	}
	return nil
}

// GetUserByEmail looks up an account by email (case-insensitive).
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account := m.findByEmail(sec.NormalizeEmail(email))
	if account == nil {
		return nil, apperr.NotFound("user")
	}
	user := account.user
	return &user, nil
}

// GetUser looks up an account by UID.
func (m *Memory) GetUser(_ context.Context, uid string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[uid]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	user := account.user
	return &user, nil
}

// CreateUser provisions a new account with a random UID.
func (m *Memory) CreateUser(_ context.Context, input CreateUserInput) (*User, error) {
	if len(input.Password) < 6 {
		return nil, apperr.WeakPassword()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := sec.NormalizeEmail(input.Email)
	if m.findByEmail(email) != nil {
		return nil, apperr.AlreadyExists("An account with this email already exists")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	account := &memoryAccount{
		user: User{
			UID:         uuid.NewString(),
			Email:       email,
			DisplayName: input.DisplayName,
			Disabled:    input.Disabled,
			CreatedAt:   time.Now().UTC(),
		},
		passwordHash: hash,
	}
	m.accounts[account.user.UID] = account
	m.writes++

	user := account.user
	return &user, nil
}

// UpdateUser applies the non-nil fields of input to the account.
func (m *Memory) UpdateUser(_ context.Context, uid string, input UpdateUserInput) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[uid]
	if !ok {
		return nil, apperr.NotFound("user")
	}

	if input.Email != nil {
		email := sec.NormalizeEmail(*input.Email)
		if existing := m.findByEmail(email); existing != nil && existing.user.UID != uid {
			return nil, apperr.AlreadyExists("An account with this email already exists")
		}
		account.user.Email = email
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, apperr.WeakPassword()
		}
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		account.passwordHash = hash
	}
	if input.DisplayName != nil {
		account.user.DisplayName = *input.DisplayName
	}
	if input.Disabled != nil {
		account.user.Disabled = *input.Disabled
	}
	m.writes++

	user := account.user
	return &user, nil
}

// DeleteUser removes the account permanently.
func (m *Memory) DeleteUser(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[uid]; !ok {
		return apperr.NotFound("user")
	}
	delete(m.accounts, uid)
	m.writes++
	return nil
}

// SetClaims replaces the account's custom claims.
func (m *Memory) SetClaims(_ context.Context, uid string, claims Claims) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[uid]
	if !ok {
		return apperr.NotFound("user")
	}
	account.user.Claims = claims
	m.writes++
	return nil
}

// ListUsers returns one page of accounts ordered by UID. The page token is
// the offset of the next page.
func (m *Memory) ListUsers(_ context.Context, pageSize int, pageToken string) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pageSize <= 0 {
		pageSize = 100
	}

	offset := 0
	if pageToken != "" {
		parsed, err := strconv.Atoi(pageToken)
		if err != nil || parsed < 0 {
			return nil, apperr.ValidationError("Invalid page token")
		}
		offset = parsed
	}

	uids := make([]string, 0, len(m.accounts))
	for uid := range m.accounts {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	page := &Page{}
	if offset >= len(uids) {
		return page, nil
	}

	end := offset + pageSize
	if end > len(uids) {
		end = len(uids)
	}
	for _, uid := range uids[offset:end] {
		page.Users = append(page.Users, m.accounts[uid].user)
	}
	if end < len(uids) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

// VerifyPassword checks a plaintext password against the stored bcrypt hash.
func (m *Memory) VerifyPassword(_ context.Context, email, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account := m.findByEmail(sec.NormalizeEmail(email))
	if account == nil {
		return nil, apperr.InvalidCredentials()
	}
	if !sec.CheckPasswordHash(password, account.passwordHash) {
		return nil, apperr.InvalidCredentials()
	}
	user := account.user
	return &user, nil
}
