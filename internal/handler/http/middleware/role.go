package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

// RequireManager requires the current employee to hold a manager role. The role
// is read from the employee store, so a demotion applies without a new token.
func RequireManager(employeeRepo employee.EmployeeRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			employeeID, ok := CurrentEmployeeID(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrMissingToken)
				return
			}

			current, err := employeeRepo.GetByID(r.Context(), employeeID)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					response.HandleError(w, fmt.Errorf("%w: unknown employee %d", user.ErrUnauthorized, employeeID))
					return
				}
				response.HandleError(w, err)
				return
			}

			if err := user.RequireApproveAbsenceRequests(current.Role); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
