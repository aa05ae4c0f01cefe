// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/omar46/sultans-admin/internal/platform/ctxkey"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuth returns a new context with the decoded cookie state attached.
//
// The authorization gate is the only writer; every downstream layer reads.
func WithAuth(ctx context.Context, auth *sec.RequestAuth) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAuth, auth)
}

// GetAuth retrieves the [*sec.RequestAuth] from the [context.Context].
//
// Returns an empty (not nil) RequestAuth when the gate did not run, so
// callers never need a nil check before field access.
func GetAuth(ctx context.Context) *sec.RequestAuth {
	auth, ok := ctx.Value(ctxkey.KeyAuth).(*sec.RequestAuth)
	if !ok {
		return &sec.RequestAuth{}
	}
	return auth
}

// GetSession is a shortcut for the login session, nil when anonymous.
func GetSession(ctx context.Context) *sec.Session {
	return GetAuth(ctx).Session
}
