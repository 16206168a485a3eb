package runner

import "errors"

var (
	ErrExpectation = errors.New("expectation not met")
	ErrNoScenario  = errors.New("no scenario")
)
