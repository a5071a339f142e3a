package domain

import "errors"

var (
	// ErrTeacherCannotTakeTest is returned when a teacher tries to start a session.
	ErrTeacherCannotTakeTest = errors.New("teachers cannot take the assessment")
	// ErrTeacherOnly is returned when a non-teacher asks for the aggregated view.
	ErrTeacherOnly = errors.New("teacher role required")
	// ErrSessionNotInProgress is returned for answers outside an active run.
	ErrSessionNotInProgress = errors.New("assessment session not in progress")
	// ErrInvalidOption indicates the selected index does not address an option.
	ErrInvalidOption = errors.New("option index out of range")
	// ErrResultNotFound indicates a delete targeted an unknown result ID.
	ErrResultNotFound = errors.New("result not found")
	// ErrDeleteNotConfirmed is returned when the user declines a destructive action.
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	// ErrIntegrateFailed wraps remote failures while saving the current level.
	ErrIntegrateFailed = errors.New("could not save current level")
	// ErrNoResults indicates there is no local result to integrate.
	ErrNoResults = errors.New("no results recorded")
	// ErrInvalidQuestionSet indicates a question set violates its invariants.
	ErrInvalidQuestionSet = errors.New("invalid question set")
)
