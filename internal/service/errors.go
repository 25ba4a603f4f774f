package service

import "errors"

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrNextUnavailable    = errors.New("no match to advance to")
)
