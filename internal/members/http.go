// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package members

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/omar46/sultans-admin/internal/platform/request"
	"github.com/omar46/sultans-admin/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the member management endpoints under the admin
// area. The gate already requires an admin session for these paths; the
// service re-checks the actor on every call regardless.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/members", handler.list)
	router.Post("/members", handler.create)
	router.Patch("/members/{uid}", handler.update)
	router.Put("/members/{uid}/disabled", handler.setDisabled)
	router.Delete("/members/{uid}", handler.delete)
	router.Post("/members/{uid}/reset-password", handler.resetPassword)
	router.Post("/maintenance/auto-fix", handler.autoFix)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), requestutil.Session(request), 0, request.URL.Query().Get("pageToken"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), requestutil.Session(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), requestutil.Session(request), requestutil.Param(request, "uid"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) setDisabled(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Disabled bool `json:"disabled"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.service.SetDisabled(request.Context(), requestutil.Session(request), requestutil.Param(request, "uid"), input.Disabled)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), requestutil.Session(request), requestutil.Param(request, "uid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	temp, err := handler.service.ResetPassword(request.Context(), requestutil.Session(request), requestutil.Param(request, "uid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"tempPassword": temp})
}

func (handler *Handler) autoFix(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.AutoFix(request.Context(), requestutil.Session(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
