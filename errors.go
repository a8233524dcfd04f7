package lowpoly

import "errors"

var (
	// ErrDuplicatePoint is returned when the same coordinate is submitted twice for triangulation.
	ErrDuplicatePoint = errors.New("duplicate point")
	// ErrUnresolvedVertex is returned when a triangulated vertex does not map back to a member.
	ErrUnresolvedVertex = errors.New("unresolved triangle vertex")
	// ErrEmptyTriangulation is returned when a non degenerate point set yields no triangle.
	ErrEmptyTriangulation = errors.New("empty triangulation")
	// ErrTooFewPoints is returned when fewer than three points are provided.
	ErrTooFewPoints = errors.New("at least three points are required")
)
