package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type FeedbackHandler interface {
	GetReceived(w http.ResponseWriter, r *http.Request)
	GetGiven(w http.ResponseWriter, r *http.Request)
	GetFeedback(w http.ResponseWriter, r *http.Request)
	CreateFeedback(w http.ResponseWriter, r *http.Request)
	CanView(w http.ResponseWriter, r *http.Request)
	CanGive(w http.ResponseWriter, r *http.Request)
}

type FeedbackHandlerImpl struct {
	feedbackService feedback.FeedbackService
}

func NewFeedbackHandler(feedbackService feedback.FeedbackService) FeedbackHandler {
	return &FeedbackHandlerImpl{
		feedbackService: feedbackService,
	}
}

// GetReceived implements FeedbackHandler. Anonymous senders are masked.
func (h *FeedbackHandlerImpl) GetReceived(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeId", "Employee ID")
	if !ok {
		return
	}

	items, err := h.feedbackService.GetReceived(r.Context(), employeeID, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// GetGiven implements FeedbackHandler.
func (h *FeedbackHandlerImpl) GetGiven(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeId", "Employee ID")
	if !ok {
		return
	}

	items, err := h.feedbackService.GetGiven(r.Context(), employeeID, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// GetFeedback implements FeedbackHandler.
func (h *FeedbackHandlerImpl) GetFeedback(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "Feedback ID")
	if !ok {
		return
	}

	detail, err := h.feedbackService.GetByID(r.Context(), id, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// CreateFeedback implements FeedbackHandler.
func (h *FeedbackHandlerImpl) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	fromID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}

	var req feedback.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateFeedback decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	detail, err := h.feedbackService.Create(r.Context(), fromID, req)
	if err != nil {
		slog.Error("CreateFeedback service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Feedback submitted successfully", detail)
}

// CanView implements FeedbackHandler.
func (h *FeedbackHandlerImpl) CanView(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeId", "Employee ID")
	if !ok {
		return
	}

	allowed, err := h.feedbackService.CanView(r.Context(), employeeID, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, feedback.PermissionResponse{Allowed: allowed})
}

// CanGive implements FeedbackHandler.
func (h *FeedbackHandlerImpl) CanGive(w http.ResponseWriter, r *http.Request) {
	requestingID, ok := currentEmployeeID(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeId", "Employee ID")
	if !ok {
		return
	}

	allowed, err := h.feedbackService.CanGive(r.Context(), employeeID, requestingID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, feedback.PermissionResponse{Allowed: allowed})
}
