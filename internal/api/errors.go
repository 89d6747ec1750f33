package api

import "fmt"

// RequestError reports a transport failure or a non-2xx response that
// does not map to a more specific error type.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: request failed (status %d)", e.Op, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ApplicationError reports an envelope with success=false on an
// otherwise successful HTTP response.
type ApplicationError struct {
	Op      string
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: server reported failure", e.Op)
}

// NotFoundError reports an operation against an unknown todo identifier
type NotFoundError struct {
	Op      string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: not found", e.Op)
}

// ValidationError reports input rejected before or by the server.
// Locally rejected input never issues a network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// GenerationError reports a failed AI generation call. An empty result
// from a successful call is not a GenerationError.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("task generation failed: %v", e.Err)
	}
	return "task generation failed"
}

func (e *GenerationError) Unwrap() error { return e.Err }
