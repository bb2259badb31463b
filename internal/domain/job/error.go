package job

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrRead         = errors.New("job store read failed")
	ErrWrite        = errors.New("job store write failed")
	ErrValidation   = errors.New("invalid job data")
	ErrUnknownField = errors.New("unknown job field")
)
