package runner

import "errors"

var (
	ErrEmptyCommand = errors.New("empty command")
)
