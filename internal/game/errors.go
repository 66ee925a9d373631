package game

import "errors"

// ErrInvalidMove is returned when a requested move references a
// missing, store, or empty starting pit, or a malformed direction.
// The caller recovers by re-querying AvailablePositions.
var ErrInvalidMove = errors.New("invalid move")

// ErrInvariantViolation signals a corrupted board or an engine bug,
// such as the resolution safety bound being exceeded. It is fatal for
// the game in progress and must not be swallowed.
var ErrInvariantViolation = errors.New("invariant violation")
