package controller

import "errors"

var (
	ErrInvalidTarget    = errors.New("not an existing directory")
	ErrWatchUnavailable = errors.New("watch unavailable")
)
