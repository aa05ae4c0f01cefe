// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package locale resolves user-facing messages for error codes.

The clan runs its dashboards in Arabic; operators and integrations may prefer
English. Language selection follows the Accept-Language header using
[golang.org/x/text/language] matching, with Arabic as the default.

Architecture:

  - Catalogs: one message table per supported language, keyed by apperr code.
  - Matching: RFC 4647 lookup via language.Matcher — never naive string compare.
  - Fallback: unknown codes fall back to the error's built-in English message.
*/
package locale

import (
	"golang.org/x/text/language"
)

// supported lists the languages with a full catalog. The first entry is the
// default when matching fails.
var supported = []language.Tag{
	language.Arabic,
	language.English,
}

var matcher = language.NewMatcher(supported)

// arabic carries the operator-facing strings used by the original dashboards.
var arabic = map[string]string{
	"INVALID_CREDENTIALS":  "بيانات الدخول غير صحيحة",
	"INVALID_CODE":         "كود التفعيل غير صحيح",
	"BLOCKED":              "هذا الكود محظور",
	"SUSPENDED":            "هذا الكود موقوف مؤقتًا",
	"EXPIRED":              "انتهت صلاحية كود التفعيل",
	"NOT_FOUND":            "العنصر المطلوب غير موجود",
	"UNAUTHORIZED":         "غير مصرح بتنفيذ هذه العملية",
	"ALREADY_EXISTS":       "البريد الإلكتروني مسجل بالفعل",
	"WEAK_PASSWORD":        "كلمة المرور يجب أن تكون 6 أحرف على الأقل",
	"UPSTREAM_UNAVAILABLE": "تعذر الاتصال بالخدمة. تأكد من ضبط الإعدادات",
	"VALIDATION_ERROR":     "يرجى التحقق من الحقول المدخلة",
	"RATE_LIMITED":         "محاولات كثيرة جدًا. حاول مرة أخرى لاحقًا",
	"INTERNAL_ERROR":       "حدث خطأ غير متوقع",
}

var english = map[string]string{
	"INVALID_CREDENTIALS":  "Invalid login credentials",
	"INVALID_CODE":         "Activation code is not valid",
	"BLOCKED":              "This activation code is blocked",
	"SUSPENDED":            "This activation code is suspended",
	"EXPIRED":              "This activation code has expired",
	"NOT_FOUND":            "The requested resource was not found",
	"UNAUTHORIZED":         "You are not authorized to perform this action",
	"ALREADY_EXISTS":       "Email is already registered",
	"WEAK_PASSWORD":        "Password must be at least 6 characters",
	"UPSTREAM_UNAVAILABLE": "Upstream service is unavailable or not configured",
	"VALIDATION_ERROR":     "Please check the submitted fields",
	"RATE_LIMITED":         "Too many attempts. Try again later",
	"INTERNAL_ERROR":       "An unexpected error occurred",
}

var catalogs = map[language.Tag]map[string]string{
	language.Arabic:  arabic,
	language.English: english,
}

// Match resolves the best supported language for an Accept-Language header.
//
// An empty or unparsable header yields Arabic.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}

	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// Message returns the catalog string for an error code in the given language.
//
// Returns "" when the code has no translation, letting the caller keep the
// error's built-in message.
func Message(tag language.Tag, code string) string {
	catalog, ok := catalogs[tag]
	if !ok {
		catalog = catalogs[supported[0]]
	}
	return catalog[code]
}
