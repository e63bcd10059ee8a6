package domain

import "errors"

var (
	// ErrCourseNotFound is returned when a course id has no catalog entry.
	ErrCourseNotFound = errors.New("course not found")
	// ErrVideoNotFound is returned when a video id has no catalog entry.
	ErrVideoNotFound = errors.New("video not found")
	// ErrQuizNotFound indicates the quiz definition could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
)

// IsNotFound reports whether err is one of the catalog not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrVideoNotFound) ||
		errors.Is(err, ErrQuizNotFound)
}
