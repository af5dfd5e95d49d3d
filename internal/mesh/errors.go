package mesh

import "errors"

// Generation errors. Both abort the pass that raised them.
var (
	// ErrContractViolation means the caller or lattice supplied malformed input.
	ErrContractViolation = errors.New("mesh contract violation")

	// ErrInvariantViolation means triangulation reached a state a correct
	// lattice can never produce.
	ErrInvariantViolation = errors.New("mesh invariant violation")
)
