// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omar46/sultans-admin/internal/platform/constants"
	requestutil "github.com/omar46/sultans-admin/internal/platform/request"
	"github.com/omar46/sultans-admin/internal/platform/respond"
)

type Handler struct {
	service *Service
	realms  *RealmService
	cookies *CookieManager
}

func NewHandler(service *Service, realms *RealmService, cookies *CookieManager) *Handler {
	return &Handler{service: service, realms: realms, cookies: cookies}
}

// RegisterRoutes mounts the directory-session login and logout.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post(constants.PathLogin, handler.login)
	router.Post("/logout", handler.logout)
}

// RegisterSuperAdminRoutes mounts the super-admin realm credentials under
// its area subrouter.
func (handler *Handler) RegisterSuperAdminRoutes(router chi.Router) {
	router.Post("/login", handler.loginSuperAdmin)
	router.Post("/logout", handler.logoutSuperAdmin)
}

// RegisterCodesAdminRoutes mounts the codes-admin realm credentials under
// its area subrouter.
func (handler *Handler) RegisterCodesAdminRoutes(router chi.Router) {
	router.Post("/login", handler.loginCodesAdmin)
	router.Post("/logout", handler.logoutCodesAdmin)
}

// RegisterMemberRoutes mounts the member portal under its area subrouter.
func (handler *Handler) RegisterMemberRoutes(router chi.Router) {
	router.Get("/profile", handler.profile)
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Profile(request.Context(), requestutil.Session(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.cookies.SetLogin(writer, user.UID, user.Email, user.Claims.Role); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, request, user.Claims.Role.HomePath())
}

// logout clears the session unconditionally: even a request with no valid
// cookies gets the deletion headers and the bounce to the login page.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.cookies.ClearLogin(writer)
	respond.Redirect(writer, request, constants.PathLogin)
}

func (handler *Handler) loginSuperAdmin(writer http.ResponseWriter, request *http.Request) {
	var input RealmLoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.realms.LoginSuperAdmin(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.SetSuperAdmin(writer, input.Username)
	respond.Redirect(writer, request, constants.PathSuperAdminRoot)
}

func (handler *Handler) logoutSuperAdmin(writer http.ResponseWriter, request *http.Request) {
	handler.cookies.ClearSuperAdmin(writer)
	respond.Redirect(writer, request, constants.PathSuperAdminRoot+"/login")
}

func (handler *Handler) loginCodesAdmin(writer http.ResponseWriter, request *http.Request) {
	var input RealmLoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.realms.LoginCodesAdmin(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.SetCodesAdmin(writer)
	respond.Redirect(writer, request, constants.PathCodesAdminRoot)
}

func (handler *Handler) logoutCodesAdmin(writer http.ResponseWriter, request *http.Request) {
	handler.cookies.ClearCodesAdmin(writer)
	respond.Redirect(writer, request, constants.PathCodesAdminLogin)
}
