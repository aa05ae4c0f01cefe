// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

// Package license manages the activation codes sold to clan admins.
//
// # Lifecycle
//
// A code is minted with a start date and a duration in whole months. Its
// end date is always startAt plus durationMonths calendar months — never a
// stored value that can drift. Codes can be blocked or suspended by the
// codes admin at any time, and extended atomically.
package license

import (
	"strings"
	"time"

	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// Status is the administrative state of a code. Expiry is not a status:
// it is derived from EndAt at evaluation time.
type Status string

const (
	StatusActive    Status = "active"
	StatusBlocked   Status = "blocked"
	StatusSuspended Status = "suspended"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusSuspended:
		return true
	}
	return false
}

// Duration bounds in months, enforced on both mint and extend.
const (
	MinDurationMonths = 1
	MaxDurationMonths = 24
)

// codeAlphabet excludes visually ambiguous characters (I, O, 0, 1) so
// codes survive being read aloud or hand-copied.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the fixed length of a generated activation code.
const CodeLength = 16

// GenerateCode mints a new random activation code.
func GenerateCode() (string, error) {
	return sec.RandomString(codeAlphabet, CodeLength)
}

// NormalizeCode uppercases and trims a user-supplied code so lookups are
// insensitive to how the buyer typed it.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// AddMonths advances t by the given number of calendar months. A code
// starting January 15 with one month ends February 15.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// Code is an activation code record.
type Code struct {
	ID             int       `json:"id"`
	Code           string    `json:"code"`
	Status         Status    `json:"status"`
	BuyerName      string    `json:"buyerName"`
	Contact        string    `json:"contact,omitempty"`
	StartAt        time.Time `json:"startAt"`
	DurationMonths int       `json:"durationMonths"`
	EndAt          time.Time `json:"endAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Expired reports whether the code's validity window has passed.
func (c *Code) Expired(now time.Time) bool {
	return !now.Before(c.EndAt)
}

// Remaining returns the validity left at now, clamped at zero.
func (c *Code) Remaining(now time.Time) time.Duration {
	if c.Expired(now) {
		return 0
	}
	return c.EndAt.Sub(now)
}
