package workbench

import "errors"

var (
	ErrUnknownScenario = errors.New("unknown scenario")
)
