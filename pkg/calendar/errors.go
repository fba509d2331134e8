package calendar

import "emperror.dev/errors"

var (
	// ErrInvalidArgument is returned for a month outside 1-12 or a year outside MinYear-MaxYear.
	ErrInvalidArgument = errors.NewPlain("invalid argument")

	// ErrRender is returned when a grid does not have the 6x7 shape the renderer expects.
	ErrRender = errors.NewPlain("render error")
)
