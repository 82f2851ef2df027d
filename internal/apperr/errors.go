package apperr

import "errors"

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrLoadFailed     = errors.New("catalog load failed")
)
