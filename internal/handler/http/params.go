package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// pathID parses a positive integer URL parameter, writing a 400 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		response.BadRequest(w, label+" is required", nil)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+label, nil)
		return 0, false
	}
	return id, true
}

// currentEmployeeID writes a 401 when the request carries no verified subject.
func currentEmployeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.CurrentEmployeeID(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrMissingToken)
		return 0, false
	}
	return id, true
}
