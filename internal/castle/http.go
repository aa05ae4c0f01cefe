// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package castle

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/omar46/sultans-admin/internal/platform/request"
	"github.com/omar46/sultans-admin/internal/platform/respond"
	"github.com/omar46/sultans-admin/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the castle roster endpoints. The gate restricts
// the mount point to coordinator and admin sessions.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/castles", handler.list)
	router.Get("/castles/all", handler.getAll)
	router.Get("/castles/{id}", handler.get)
	router.Post("/castles", handler.create)
	router.Put("/castles/{id}", handler.update)
	router.Delete("/castles/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) getAll(writer http.ResponseWriter, request *http.Request) {
	castles, err := handler.service.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, castles)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	castle, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, castle)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	castle, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, castle)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	castle, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, castle)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
