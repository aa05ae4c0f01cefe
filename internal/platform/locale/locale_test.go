// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/locale"
)

/*
TestMatch verifies Accept-Language resolution with an Arabic default.
*/
func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{"empty_header_defaults_to_arabic", "", language.Arabic},
		{"garbage_header_defaults_to_arabic", ";;;", language.Arabic},
		{"explicit_arabic", "ar", language.Arabic},
		{"regional_arabic", "ar-EG", language.Arabic},
		{"explicit_english", "en-US,en;q=0.9", language.English},
		{"unsupported_falls_back", "fr-FR", language.Arabic},
		{"weighted_preference", "en;q=0.4,ar;q=0.9", language.Arabic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Match(tt.header))
		})
	}
}

/*
TestMessage verifies catalog lookups for every taxonomy code.
*/
func TestMessage(t *testing.T) {
	codes := []string{
		apperr.CodeInvalidCredentials,
		apperr.CodeInvalidCode,
		apperr.CodeBlocked,
		apperr.CodeSuspended,
		apperr.CodeExpired,
		apperr.CodeNotFound,
		apperr.CodeUnauthorized,
		apperr.CodeAlreadyExists,
		apperr.CodeWeakPassword,
		apperr.CodeUpstreamUnavailable,
		apperr.CodeValidation,
		apperr.CodeRateLimited,
		apperr.CodeInternal,
	}

	// Every code must have a translation in both catalogs.
	for _, code := range codes {
		assert.NotEmpty(t, locale.Message(language.Arabic, code), "arabic %s", code)
		assert.NotEmpty(t, locale.Message(language.English, code), "english %s", code)
	}

	// The blocked-code message matches the original dashboard wording.
	assert.Equal(t, "هذا الكود محظور", locale.Message(language.Arabic, apperr.CodeBlocked))

	// Unknown codes yield empty so the built-in message is kept.
	assert.Empty(t, locale.Message(language.Arabic, "NO_SUCH_CODE"))
}
