package qerrors

import (
	"errors"
	"net/http"
)

// Kind classifies an error so routers can pick a status code without knowing which entity failed.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindForbidden
)

// Error is a client-facing error with a Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	// Storage errors
	UnknownCollectionError = newError(KindInternal, "unknown collection")
	CorruptCollectionError = newError(KindInternal, "stored collection is not valid JSON")

	// User errors
	UserNotFoundError = newError(KindNotFound, "user not found")

	// Course errors
	CourseNotFoundError = newError(KindNotFound, "course not found")
	VideoNotFoundError  = newError(KindNotFound, "video not found")

	// Chat errors
	ChatNotFoundError = newError(KindNotFound, "chat not found")
	EmptyMessageError = newError(KindValidation, "message is required")

	// Document errors
	DocumentNotFoundError = newError(KindNotFound, "document not found")
	MissingFileError      = newError(KindValidation, "a file is required")

	// Assessment errors
	AssessmentNotFoundError = newError(KindNotFound, "assessment not found")
	AlreadySubmittedError   = newError(KindConflict, "assessment already submitted by this guest")
	AnswerOutOfRangeError   = newError(KindValidation, "answer index does not match a question")

	// Live class errors
	LiveClassNotFoundError       = newError(KindNotFound, "live class not found")
	InvalidStatusTransitionError = newError(KindConflict, "invalid live class status transition")
	ConflictingStatusError       = newError(KindValidation, "a live class cannot be active and completed at once")

	// Admin errors
	AdminKeyRequiredError = newError(KindForbidden, "admin key required")
)

// NewValidationError reports a missing or malformed request field.
func NewValidationError(msg string) error {
	return newError(KindValidation, msg)
}

// KindOf returns the Kind of err, or KindInternal for errors not raised by this package.
func KindOf(err error) Kind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindInternal
}

// HTTPStatus maps err onto the status code a handler should answer with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
