// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and give clients a stable, machine-readable
// taxonomy next to the human-readable `error` message. Generic codes mirror
// HTTP status semantics; operation codes identify which store call failed.
//
// Example response:
//
//	{
//	  "error": "nombre and token are required",
//	  "code": "bad_request",
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnavailable      = "unavailable"
	ErrCodePayloadTooLarge  = "payload_too_large"

	// Per-operation store failures:
	ErrCodeListFailed   = "list_failed"
	ErrCodeGetFailed    = "get_failed"
	ErrCodeCreateFailed = "create_failed"
	ErrCodeUpdateFailed = "update_failed"
	ErrCodeDeleteFailed = "delete_failed"
)
