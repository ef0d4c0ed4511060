package twocolor

import "errors"

// Errors
var (
	ErrInvalidGraph = errors.New("invalid graph")
	ErrBadVtxID     = errors.New("bad graph vertex ID")
	ErrBadEncoding  = errors.New("bad graph encoding")
)
