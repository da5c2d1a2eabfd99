package user

import "errors"

var (
	ErrUnauthorized = errors.New("not authorized to perform this action")
	ErrInvalidRole  = errors.New("invalid role")
)
