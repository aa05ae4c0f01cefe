// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package directory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/directory"
)

/*
TestPager_WalksAllPages verifies that the pager visits every account
exactly once across multiple pages.
*/
func TestPager_WalksAllPages(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	const total = 7
	for i := 0; i < total; i++ {
		_, err := dir.CreateUser(ctx, directory.CreateUserInput{
			Email:    fmt.Sprintf("user%d@sultans.com", i),
			Password: "secret123",
		})
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	pages := 0
	pager := directory.NewPager(dir, 3)
	for pager.Next(ctx) {
		pages++
		for _, user := range pager.Users() {
			assert.False(t, seen[user.UID], "account visited twice: %s", user.UID)
			seen[user.UID] = true
		}
	}
	require.NoError(t, pager.Err())

	assert.Len(t, seen, total)
	assert.Equal(t, 3, pages) // 3 + 3 + 1
}

/*
TestPager_EmptyDirectory verifies the pager terminates immediately on an
empty directory.
*/
func TestPager_EmptyDirectory(t *testing.T) {
	ctx := context.Background()
	pager := directory.NewPager(directory.NewMemory(), 10)

	assert.False(t, pager.Next(ctx))
	assert.NoError(t, pager.Err())
	assert.Empty(t, pager.Users())
}
