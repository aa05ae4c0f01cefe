// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omar46/sultans-admin/internal/platform/ctxutil"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Auth verifies that decoded cookie state can be stored in context.
*/
func TestContext_Auth(t *testing.T) {
	ctx := context.Background()

	// 1. Without the gate, an empty RequestAuth is returned (never nil)
	empty := ctxutil.GetAuth(ctx)
	assert.NotNil(t, empty)
	assert.Nil(t, empty.Session)
	assert.Nil(t, ctxutil.GetSession(ctx))

	// 2. Inject and retrieve
	auth := &sec.RequestAuth{
		Session: &sec.Session{Role: sec.RoleAdmin, Email: "admin@sultans.com"},
		Activation: &sec.Activation{
			Code: "ABCDEFGHJKLMNPQR",
			End:  time.Now().Add(time.Hour),
		},
	}
	ctx = ctxutil.WithAuth(ctx, auth)

	retrieved := ctxutil.GetAuth(ctx)
	assert.Equal(t, sec.RoleAdmin, retrieved.Session.Role)
	assert.True(t, retrieved.Activated(time.Now()))
	assert.Equal(t, "admin@sultans.com", ctxutil.GetSession(ctx).Email)
}
