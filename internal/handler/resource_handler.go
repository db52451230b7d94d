package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"craftynet/api/internal/service"
)

const (
	msgInvalidBody   = "Cuerpo de solicitud inválido"
	msgMissingFields = "Faltan campos obligatorios"
	msgInternal      = "Error interno del servidor"
)

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// List answers GET /api/<resource>.
func (h *Handler) List(res service.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.svc.List(r.Context(), res)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, res.Messages.List)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// Get answers GET /api/<resource>/{id}. A failed lookup is reported as not
// found, the same as a missing row.
func (h *Handler) Get(res service.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeMessage(w, http.StatusNotFound, res.Messages.NotFound)
			return
		}

		row, err := h.svc.Get(r.Context(), res, id)
		if err != nil {
			writeMessage(w, http.StatusNotFound, res.Messages.NotFound)
			return
		}
		writeJSON(w, http.StatusOK, row)
	}
}

// Create answers POST /api/<resource> with the submitted fields plus the new id.
func (h *Handler) Create(res service.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := res.New()
		if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		err := h.svc.Create(r.Context(), res, rec)

		var internal *service.InternalError
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, rec)
		case errors.Is(err, service.ErrMissingFields):
			writeMessage(w, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, service.ErrDuplicate):
			writeMessage(w, http.StatusBadRequest, res.Messages.Duplicate)
		case errors.As(err, &internal):
			h.log.WithFields(logrus.Fields{
				"resource":   res.Path,
				"request_id": middleware.GetReqID(r.Context()),
			}).WithError(err).Error("create failed")
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgInternal, Error: internal.Error()})
		default:
			writeMessage(w, http.StatusInternalServerError, res.Messages.Create)
		}
	}
}
