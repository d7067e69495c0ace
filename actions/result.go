// Package actions holds the mutating entry points. Every action runs
// validate, authorize, persist, invalidate in that order and reports its
// outcome as a Result; failures are ordinary data, never panics.
package actions

import (
	"errors"

	"github.com/rs/zerolog/log"

	"storefront/store"
	"storefront/validator"
)

type Kind int

const (
	KindOK Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindUnknown
)

// Result is the uniform envelope returned by every action. Redirect is a
// navigation instruction for page-level guards, distinct from error state;
// Token carries a freshly issued session out of the auth actions.
type Result struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Fields     validator.Fields `json:"fields,omitempty"`
	Data       any              `json:"data,omitempty"`
	TotalPages int              `json:"totalPages,omitempty"`

	// Redirect tells the caller where to navigate next. It is an
	// instruction, not an error: page-level guards turn it into an HTTP
	// redirect, client actions receive it inside the envelope.
	Redirect string `json:"redirectTo,omitempty"`

	Kind  Kind   `json:"-"`
	Token string `json:"-"`
}

func ok(message string) Result {
	return Result{Success: true, Message: message, Kind: KindOK}
}

func okData(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data, Kind: KindOK}
}

func okPage(message string, data any, totalPages int) Result {
	return Result{Success: true, Message: message, Data: data, TotalPages: totalPages, Kind: KindOK}
}

func invalid(fields validator.Fields) Result {
	return Result{Message: fields.Summary(), Fields: fields, Kind: KindValidation}
}

func invalidMsg(field, message string) Result {
	return invalid(validator.Fields{{Field: field, Message: message}})
}

func unauthorized(message string) Result {
	return Result{Message: message, Kind: KindUnauthorized}
}

func redirectTo(path, message string) Result {
	return Result{Message: message, Kind: KindUnauthorized, Redirect: path}
}

func notFound(message string) Result {
	return Result{Message: message, Kind: KindNotFound}
}

func conflict(message string) Result {
	return Result{Message: message, Kind: KindConflict}
}

// fail translates gateway errors into user-facing results. Unexpected errors
// are logged and reported generically so datastore details never leak.
func fail(err error, conflictMessage string) Result {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound("record not found")
	case errors.Is(err, store.ErrDuplicate):
		return conflict(conflictMessage)
	case errors.Is(err, store.ErrInsufficientStock):
		return invalidMsg("qty", "not enough stock")
	default:
		log.Error().Err(err).Msg("action failed")
		return Result{Message: "something went wrong, please try again", Kind: KindUnknown}
	}
}
