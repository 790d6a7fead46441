// Package services defines the business logic for bots. This file centralizes
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrBotNotFound indicates that no bot exists with the requested id.
	ErrBotNotFound = errors.New("bot not found")

	// ErrMissingRequired is returned when a create or update request lacks a
	// non-blank nombre or token.
	ErrMissingRequired = errors.New("nombre and token are required")
)
