package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type AbsenceHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetEmployeeRequests(w http.ResponseWriter, r *http.Request)
	GetApprovedRequests(w http.ResponseWriter, r *http.Request)
	GetPendingApprovals(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	DeclineRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &AbsenceHandlerImpl{
		absenceService: absenceService,
	}
}

// CreateRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}

	var req absence.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.absenceService.Create(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("CreateRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence request submitted successfully", created)
}

// GetMyRequests implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}

	requests, err := h.absenceService.ListMine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetEmployeeRequests implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "id", "Employee ID")
	if !ok {
		return
	}

	requests, err := h.absenceService.ListForEmployee(r.Context(), employeeID, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetApprovedRequests implements AbsenceHandler. Reasons are not included.
func (h *AbsenceHandlerImpl) GetApprovedRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.absenceService.ListApproved(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetPendingApprovals implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	managerID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}

	requests, err := h.absenceService.ListPendingForManager(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "id", "Request ID")
	if !ok {
		return
	}

	request, err := h.absenceService.GetByID(r.Context(), requestID, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// ApproveRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "ApproveRequest", h.absenceService.Approve, "Absence request approved")
}

// DeclineRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "DeclineRequest", h.absenceService.Decline, "Absence request declined")
}

type decisionFunc func(ctx context.Context, requestID, approverID int64, notes *string) (absence.AbsenceResponse, error)

func (h *AbsenceHandlerImpl) decide(w http.ResponseWriter, r *http.Request, op string, fn decisionFunc, message string) {
	approverID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "id", "Request ID")
	if !ok {
		return
	}

	// The body is optional; an empty one means no notes.
	var req absence.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := fn(r.Context(), requestID, approverID, req.Notes)
	if err != nil {
		slog.Error(op+" service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info(message, "request_id", requestID, "approver_id", approverID)
	response.SuccessWithMessage(w, message, decided)
}

// CancelRequest implements AbsenceHandler. Only the owner can cancel, and only
// while the request is pending.
func (h *AbsenceHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "id", "Request ID")
	if !ok {
		return
	}

	cancelled, err := h.absenceService.Cancel(r.Context(), requestID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !cancelled {
		response.NotFound(w, "Absence request not found")
		return
	}

	response.SuccessWithMessage(w, "Absence request cancelled", nil)
}
