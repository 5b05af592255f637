package nh5

import "errors"

var (
	ErrCapacityExceeded = errors.New("nh5: fixed array capacity exceeded")
	ErrUnknownLayout    = errors.New("nh5: unknown layout")
	ErrLayoutMismatch   = errors.New("nh5: record layout mismatch")
)
