package types

import "errors"

// Domain specific errors shared by the planner, the session state machine and the handlers.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingAPIKey     = errors.New("gemini api key is not configured")
	ErrEmptyResponse     = errors.New("no response from model")
	ErrMalformedResponse = errors.New("model response is not valid json")
	ErrSchemaViolation   = errors.New("model response does not match schema")
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrNoItinerary       = errors.New("no itinerary generated yet")
	ErrChatBusy          = errors.New("a chat reply is still pending")
	ErrSuperseded        = errors.New("request superseded by a newer one")
)
