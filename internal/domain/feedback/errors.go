package feedback

import "errors"

var (
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrRecipientNotFound = errors.New("recipient employee not found")
	ErrInvalidType       = errors.New("invalid feedback type")
)
