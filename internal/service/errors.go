package service

import "errors"

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
	ErrPermission   = errors.New("forbidden")    // 403
	ErrUnauthorized = errors.New("unauthorized") // 401
)
