package user

import "fmt"

// IsManager reports whether role carries manager privileges. Admin is treated
// exactly like Manager everywhere.
func IsManager(role Role) bool {
	return role == RoleManager || role == RoleAdmin
}

// selfOrManager is the shared rule behind profile, absence and feedback visibility.
func selfOrManager(actorID int64, actorRole Role, targetID int64) bool {
	return actorID == targetID || IsManager(actorRole)
}

func CanViewProfile(actorID int64, actorRole Role, targetID int64) bool {
	return selfOrManager(actorID, actorRole, targetID)
}

func CanEditProfile(actorID int64, actorRole Role, targetID int64) bool {
	return selfOrManager(actorID, actorRole, targetID)
}

func CanViewAbsenceRequests(actorID int64, actorRole Role, targetID int64) bool {
	return selfOrManager(actorID, actorRole, targetID)
}

func CanApproveAbsenceRequests(actorRole Role) bool {
	return IsManager(actorRole)
}

func CanViewFeedback(actorID int64, actorRole Role, targetID int64) bool {
	return selfOrManager(actorID, actorRole, targetID)
}

// CanGiveFeedback needs both employees to exist; the caller resolves existence.
func CanGiveFeedback(fromID, toID int64, fromExists, toExists bool) bool {
	return fromID != toID && fromExists && toExists
}

func RequireViewProfile(actorID int64, actorRole Role, targetID int64) error {
	if !CanViewProfile(actorID, actorRole, targetID) {
		return fmt.Errorf("%w: cannot view profile of employee %d", ErrUnauthorized, targetID)
	}
	return nil
}

func RequireEditProfile(actorID int64, actorRole Role, targetID int64) error {
	if !CanEditProfile(actorID, actorRole, targetID) {
		return fmt.Errorf("%w: cannot edit profile of employee %d", ErrUnauthorized, targetID)
	}
	return nil
}

func RequireViewAbsenceRequests(actorID int64, actorRole Role, targetID int64) error {
	if !CanViewAbsenceRequests(actorID, actorRole, targetID) {
		return fmt.Errorf("%w: cannot view absence requests of employee %d", ErrUnauthorized, targetID)
	}
	return nil
}

func RequireApproveAbsenceRequests(actorRole Role) error {
	if !CanApproveAbsenceRequests(actorRole) {
		return fmt.Errorf("%w: manager access required", ErrUnauthorized)
	}
	return nil
}

func RequireViewFeedback(actorID int64, actorRole Role, targetID int64) error {
	if !CanViewFeedback(actorID, actorRole, targetID) {
		return fmt.Errorf("%w: cannot view feedback of employee %d", ErrUnauthorized, targetID)
	}
	return nil
}

func RequireGiveFeedback(fromID, toID int64, fromExists, toExists bool) error {
	if !CanGiveFeedback(fromID, toID, fromExists, toExists) {
		return fmt.Errorf("%w: cannot give feedback to employee %d", ErrUnauthorized, toID)
	}
	return nil
}
