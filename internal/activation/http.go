// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package activation

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/constants"
	requestutil "github.com/omar46/sultans-admin/internal/platform/request"
	"github.com/omar46/sultans-admin/internal/platform/respond"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/pkg/pagination"
)

// CookieWriter is the slice of the session cookie manager the activation
// flow needs.
type CookieWriter interface {
	SetActivation(writer http.ResponseWriter, code string, end time.Time)
	ClearActivation(writer http.ResponseWriter)
}

type Handler struct {
	service *Service
	cookies CookieWriter
}

func NewHandler(service *Service, cookies CookieWriter) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// RegisterRoutes mounts the public activation wall endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/verify", handler.verify)
	router.Get("/status", handler.statusForAdmin)
}

// RegisterAdminRoutes mounts the codes-admin management endpoints. Every
// handler checks the codes-admin realm before touching its payload.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/codes", handler.listCodes)
	router.Post("/codes", handler.createCode)
	router.Patch("/codes/{code}", handler.updateCode)
	router.Put("/codes/{code}/status", handler.setStatus)
	router.Post("/codes/{code}/extend", handler.extendCode)
	router.Delete("/codes/{code}", handler.deleteCode)
}

// requireCodesAdmin rejects requests outside the codes-admin realm. The
// check runs before any payload validation.
func requireCodesAdmin(request *http.Request) error {
	if !requestutil.Auth(request).CodesAdmin {
		return apperr.Unauthorized("Codes admin session required")
	}
	return nil
}

func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Code string `json:"code"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	code, err := handler.service.Verify(request.Context(), input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.SetActivation(writer, code.Code, code.EndAt)
	respond.Redirect(writer, request, constants.PathLogin+"?activated=1")
}

func (handler *Handler) statusForAdmin(writer http.ResponseWriter, request *http.Request) {
	auth := requestutil.Auth(request)
	if auth.Session == nil || auth.Session.Role != sec.RoleAdmin {
		respond.Error(writer, request, apperr.Unauthorized("Admin session required"))
		return
	}

	status := handler.service.StatusForAdmin(request.Context(), auth.Activation)
	if !status.Active {
		handler.cookies.ClearActivation(writer)
	}
	respond.OK(writer, status)
}

func (handler *Handler) listCodes(writer http.ResponseWriter, request *http.Request) {
	if err := requireCodesAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	codes, total, err := handler.service.ListCodes(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, codes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createCode(writer http.ResponseWriter, request *http.Request) {
	if err := requireCodesAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	code, err := handler.service.CreateCode(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, code)
}

func (handler *Handler) updateCode(writer http.ResponseWriter, request *http.Request) {
	if err := requireCodesAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		BuyerName      *string         `json:"buyerName"`
		Contact        *string         `json:"contact"`
		Status         *license.Status `json:"status"`
		DurationMonths *int            `json:"durationMonths"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCode(request.Context(), requestutil.Param(request, "code"), license.UpdateInput{
		BuyerName:      input.BuyerName,
		Contact:        input.Contact,
		Status:         input.Status,
		DurationMonths: input.DurationMonths,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	if err := requireCodesAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status license.Status `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetStatus(request.Context(), requestutil.Param(request, "code"), input.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) extendCode(writer http.ResponseWriter, request *http.Request) {
	if err := requireCodesAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Months int `json:"months"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	extended, err := handler.service.ExtendCode(request.Context(), requestutil.Param(request, "code"), input.Months)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, extended)
}

func (handler *Handler) deleteCode(writer http.ResponseWriter, request *http.Request) {
	if err := requireCodesAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCode(request.Context(), requestutil.Param(request, "code")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
