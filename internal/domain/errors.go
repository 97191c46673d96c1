package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrOverlappingSleep = errors.New("overlapping sleep period detected")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTrackingActive   = errors.New("sleep tracking already in progress")
	ErrTrackingInactive = errors.New("no sleep tracking in progress")
)
