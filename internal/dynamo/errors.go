package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrCollision indicates two gravitating bodies share the same position.
	ErrCollision = errors.New("dynamo: collision between bodies")

	// ErrUnknownBody indicates a lookup by name found no body.
	ErrUnknownBody = errors.New("dynamo: unknown body")

	// ErrNoBodies indicates an empty body set.
	ErrNoBodies = errors.New("dynamo: no bodies configured")
)

// CollisionError reports the pair of bodies found at zero separation.
type CollisionError struct {
	Step int
	A, B string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("dynamo: collision detected between %s and %s (step %d)", e.A, e.B, e.Step)
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
