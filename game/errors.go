package game

import "fmt"

// Reasons a placement can be rejected.
const (
	ReasonOffBoard = "off board"
	ReasonOccupied = "occupied"
	ReasonSuicide  = "suicide"
	ReasonKo       = "ko"
)

// IllegalMoveError reports a move rejected by Apply. It is recoverable:
// search strategies treat it as "prune this branch", never as fatal.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

// ConfigurationError reports an invalid setting (unknown strategy name,
// bad board size, non-positive depth or budget). It is fatal and surfaced
// before any game runs.
type ConfigurationError struct {
	Setting string
	Value   any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v", e.Setting, e.Value)
}
