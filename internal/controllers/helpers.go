package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vishnuvarthan48/biomedical-cms/internal/constants"
	"github.com/vishnuvarthan48/biomedical-cms/internal/dtos"
	"github.com/vishnuvarthan48/biomedical-cms/internal/middleware"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

var validate = utils.NewValidator()

func callerFrom(w http.ResponseWriter, r *http.Request) (models.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, r, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing caller in context", nil)
	}
	return caller, ok
}

// decodeBody reads and validates a JSON body. Malformed JSON is
// INVALID_PAYLOAD; failed constraints come back as fieldErrors.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, r, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		utils.HandleAppError(w, r, utils.ValidationError(utils.FieldErrors(err)))
		return req, false
	}
	return req, true
}

func reply(w http.ResponseWriter, r *http.Request, status int, message string, data any, err error) {
	if err != nil {
		utils.HandleAppError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, r, status, message, data)
}

func badParam(w http.ResponseWriter, r *http.Request, name string, err error) {
	utils.RespondErrorWithCode(w, r, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
		fmt.Sprintf("Invalid parameter: %s", name), nil, err)
}

func requiredInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		utils.RespondErrorWithCode(w, r, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			fmt.Sprintf("Missing required parameter: %s", name), nil)
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badParam(w, r, name, err)
		return 0, false
	}
	return v, true
}

func optionalInt64(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badParam(w, r, name, err)
		return nil, false
	}
	return &v, true
}

func boolParam(w http.ResponseWriter, r *http.Request, name string, def bool) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badParam(w, r, name, err)
		return false, false
	}
	return v, true
}

// pageParams reads 0-based page and size. size is capped at MaxPageSize.
func pageParams(w http.ResponseWriter, r *http.Request, defaultSize int) (repositories.PageRequest, bool) {
	page := repositories.PageRequest{Page: 0, Size: defaultSize}
	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badParam(w, r, "page", err)
			return page, false
		}
		page.Page = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badParam(w, r, "size", err)
			return page, false
		}
		page.Size = min(n, constants.MaxPageSize)
	}
	return page, true
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		badParam(w, r, name, err)
		return 0, false
	}
	return v, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		badParam(w, r, name, err)
		return uuid.Nil, false
	}
	return v, true
}

// recordService is the mutation surface every status-scoped kind exposes.
type recordService[C, U, T any] interface {
	Create(ctx context.Context, caller models.Caller, req C) (T, error)
	Update(ctx context.Context, caller models.Caller, req U) (T, error)
	Delete(ctx context.Context, caller models.Caller, id int64) error
	ToggleStatus(ctx context.Context, caller models.Caller, req dtos.ToggleStatusRequest) (T, error)
}

type mutationMessages struct {
	Created string
	Updated string
	Deleted string
	Toggled string
}

// mutationHandlers serves create, update, delete and toggle-status for
// one record kind. Controllers embed it.
type mutationHandlers[C, U, T any] struct {
	svc recordService[C, U, T]
	msg mutationMessages
}

// POST .../create
func (h mutationHandlers[C, U, T]) CreateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[C](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Create(r.Context(), caller, req)
	reply(w, r, http.StatusCreated, h.msg.Created, res, err)
}

// PUT .../update
func (h mutationHandlers[C, U, T]) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[U](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Update(r.Context(), caller, req)
	reply(w, r, http.StatusOK, h.msg.Updated, res, err)
}

// DELETE .../delete/{id}
func (h mutationHandlers[C, U, T]) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	reply(w, r, http.StatusOK, h.msg.Deleted, nil, h.svc.Delete(r.Context(), caller, id))
}

// PATCH .../toggle-status
func (h mutationHandlers[C, U, T]) ToggleStatusHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeBody[dtos.ToggleStatusRequest](w, r)
	if !ok {
		return
	}
	if req.ID == 0 {
		utils.HandleAppError(w, r, utils.ValidationError(map[string]string{"id": "id is required"}))
		return
	}
	res, err := h.svc.ToggleStatus(r.Context(), caller, req)
	reply(w, r, http.StatusOK, h.msg.Toggled, res, err)
}
