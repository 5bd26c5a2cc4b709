package scenario

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid scenario configuration")
	ErrUnknownComponent = errors.New("unknown component type")
	ErrUnknownFormat    = errors.New("unknown scenario file format")
)
