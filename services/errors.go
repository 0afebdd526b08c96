package services

import "errors"

// Error conditions surfaced by the engine. Match with errors.Is.
var (
	// ErrValidation marks rejected input. Nothing was committed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown goal id. State is unchanged.
	ErrNotFound = errors.New("not found")

	// ErrCollaboratorUnavailable wraps failures of the store, profile or leaderboard collaborators.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrInconsistentState is returned when stored points disagree with completed goals.
	ErrInconsistentState = errors.New("inconsistent state")
)
