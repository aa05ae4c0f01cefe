// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package war

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

// RegisterRoutes mounts the war calendar endpoints. The gate restricts
// the mount point to coordinator and admin sessions.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/wars", handler.list)
	router.Post("/wars", handler.create)
	router.Get("/wars/{id}", handler.get)
	router.Put("/wars/{id}", handler.update)
	router.Delete("/wars/{id}", handler.delete)

	router.Get("/wars/{id}/schedule", handler.getSchedule)
	router.Put("/wars/{id}/schedule", handler.saveSchedule)

	router.Get("/wars/{id}/attendance", handler.listAttendance)
	router.Post("/wars/{id}/attendance", handler.register)
	router.Get("/wars/{id}/available-castles", handler.availableCastles)
}

// RegisterSignupRoutes mounts the shareable registration link. Coordinators
// copy the link and any activated visitor can open it, so it lives outside
// the role areas.
func (handler *Handler) RegisterSignupRoutes(router chi.Router) {
	router.Get("/war-attendance/{id}", handler.signup)
	router.Post("/war-attendance/{id}", handler.register)
}

func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	sheet, err := handler.service.Signup(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sheet)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	wars, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, wars)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	war, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, war)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	war, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, war)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	war, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, war)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getSchedule(writer http.ResponseWriter, request *http.Request) {
	schedule, err := handler.service.GetSchedule(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, schedule)
}

func (handler *Handler) saveSchedule(writer http.ResponseWriter, request *http.Request) {
	var input ScheduleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	schedule, err := handler.service.SaveSchedule(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, schedule)
}

func (handler *Handler) listAttendance(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.ListAttendance(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The register stamp records who clicked, not what the form claims.
	if session := requestutil.Session(request); session != nil {
		input.RegisteredBy = session.Email
	}

	record, err := handler.service.Register(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

func (handler *Handler) availableCastles(writer http.ResponseWriter, request *http.Request) {
	castles, err := handler.service.AvailableCastles(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, castles)
}
