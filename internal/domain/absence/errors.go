package absence

import "errors"

var (
	ErrAbsenceRequestNotFound = errors.New("absence request not found")
	ErrInvalidRange           = errors.New("invalid date range")
	ErrConflictingRequest     = errors.New("an active absence request already covers these dates")
	ErrInvalidState           = errors.New("absence request is no longer pending")
	ErrInvalidType            = errors.New("invalid absence type")
	ErrInvalidStatus          = errors.New("invalid absence status")
)
