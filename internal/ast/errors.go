package ast

import (
	"errors"
	"fmt"
)

// ErrContract is wrapped by every ContractError.
var ErrContract = errors.New("contract violation")

// ContractError reports a caller bug: a query or edit was applied to a node
// shape it does not support. It is raised with panic and recovered by the
// pipeline step that triggered it.
type ContractError struct {
	Op   string
	Kind Kind
	Msg  string
}

func (e *ContractError) Error() string {
	if e.Kind != KindInvalid {
		return fmt.Sprintf("%s: %s: %s (%s)", ErrContract, e.Op, e.Msg, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", ErrContract, e.Op, e.Msg)
}

func (e *ContractError) Unwrap() error {
	return ErrContract
}

// Violation panics with a ContractError.
func Violation(op string, kind Kind, format string, args ...any) {
	panic(&ContractError{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}
