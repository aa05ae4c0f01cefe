// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package auth

import (
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/internal/platform/validate"
)

// RealmService authenticates the two fixed-credential realms. The
// credentials come from configuration as a username plus a bcrypt hash —
// no plaintext password is ever stored.
type RealmService struct {
	superAdminUser     string
	superAdminPassHash string
	codesAdminUser     string
	codesAdminPassHash string
}

// NewRealmService constructs the realm service from configured
// credentials.
func NewRealmService(superAdminUser, superAdminPassHash, codesAdminUser, codesAdminPassHash string) *RealmService {
	return &RealmService{
		superAdminUser:     superAdminUser,
		superAdminPassHash: superAdminPassHash,
		codesAdminUser:     codesAdminUser,
		codesAdminPassHash: codesAdminPassHash,
	}
}

// RealmLoginInput holds the realm login form fields.
type RealmLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// check validates the form and compares against one fixed credential
// pair. Both failure modes return the same INVALID_CREDENTIALS so the
// response does not reveal whether the username exists.
func check(input RealmLoginInput, wantUser, wantHash string) error {
	v := &validate.Validator{}
	err := v.
		Required("username", input.Username).
		Required("password", input.Password).
		Err()
	if err != nil {
		return err
	}

	if input.Username != wantUser || !sec.CheckPasswordHash(input.Password, wantHash) {
		return apperr.InvalidCredentials()
	}
	return nil
}

// LoginSuperAdmin checks the super-admin realm credentials.
func (service *RealmService) LoginSuperAdmin(input RealmLoginInput) error {
	return check(input, service.superAdminUser, service.superAdminPassHash)
}

// LoginCodesAdmin checks the codes-admin realm credentials.
func (service *RealmService) LoginCodesAdmin(input RealmLoginInput) error {
	return check(input, service.codesAdminUser, service.codesAdminPassHash)
}
