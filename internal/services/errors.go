package services

import "errors"

// Only these conditions abort a request and reach the caller. Predictor
// unavailability, assignment gaps and event delivery failures all degrade
// gracefully and are logged instead.
var (
	ErrNoSuitableProgram      = errors.New("no suitable program found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrInmateNotFound         = errors.New("inmate not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)
