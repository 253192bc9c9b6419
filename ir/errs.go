package ir

import "errors"

var (
	// ErrJSON wraps every malformed-input error from DecodeJSON.
	ErrJSON = errors.New("malformed JSON")
)
