// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package admins

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

// RegisterRoutes mounts the super-admin realm endpoints. The service
// checks the realm flag on every call; there is no route-level shortcut.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/admins", handler.list)
	router.Post("/admins", handler.create)
	router.Patch("/admins/{uid}", handler.update)
	router.Post("/admins/{uid}/disable", handler.disable)
	router.Post("/admins/{uid}/enable", handler.enable)
	router.Delete("/admins/{uid}", handler.delete)
	router.Post("/admins/{uid}/reset-password", handler.resetPassword)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	admins, err := handler.service.List(request.Context(), requestutil.Auth(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, admins)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), requestutil.Auth(request), input)
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

	user, err := handler.service.Update(request.Context(), requestutil.Auth(request), requestutil.Param(request, "uid"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) disable(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Disable(request.Context(), requestutil.Auth(request), requestutil.Param(request, "uid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) enable(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Enable(request.Context(), requestutil.Auth(request), requestutil.Param(request, "uid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), requestutil.Auth(request), requestutil.Param(request, "uid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	temp, err := handler.service.ResetPassword(request.Context(), requestutil.Auth(request), requestutil.Param(request, "uid"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"tempPassword": temp})
}
