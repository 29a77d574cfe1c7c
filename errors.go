package norm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("norm: invalid engine configuration")

	// ErrInvalidFragment is returned when an appended fragment has no elements.
	ErrInvalidFragment = errors.New("norm: fragment must have at least one element")

	// ErrInvalidClauseKind is matched by every *InvalidClauseKindError.
	ErrInvalidClauseKind = errors.New("norm: invalid clause kind")

	// ErrEmptyArgument is matched by every *EmptyArgumentError.
	ErrEmptyArgument = errors.New("norm: empty argument")

	// ErrInvalidField is returned for a field descriptor that cannot be read.
	ErrInvalidField = errors.New("norm: invalid field descriptor")

	// ErrNotConnected is returned when a statement is executed without a connection.
	ErrNotConnected = errors.New("norm: not connected")

	// ErrUnknownFieldType is matched by every *UnknownFieldTypeError.
	ErrUnknownFieldType = errors.New("norm: unknown field type")

	// ErrUnknownClause is matched by every *UnknownClauseError.
	ErrUnknownClause = errors.New("norm: unknown clause")
)

// ConfigurationError is returned when an engine is built without the
// parameters its backend requires.
type ConfigurationError struct {
	Engine  string
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("norm: %s engine requires %s", e.Engine, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("norm: %s engine: %s", e.Engine, e.Reason)
}

func (e *ConfigurationError) Is(err error) bool {
	return err == ErrConfiguration
}

// InvalidClauseKindError is returned when a fragment's kind is not accepted by the buffer.
type InvalidClauseKindError struct {
	Kind string
}

func (e *InvalidClauseKindError) Error() string {
	return fmt.Sprintf("norm: invalid clause kind %q", e.Kind)
}

func (e *InvalidClauseKindError) Is(err error) bool {
	return err == ErrInvalidClauseKind
}

// EmptyArgumentError is returned by operations that need at least one argument.
type EmptyArgumentError struct {
	Op string
}

func (e *EmptyArgumentError) Error() string {
	return fmt.Sprintf("norm: %s requires at least one argument", e.Op)
}

func (e *EmptyArgumentError) Is(err error) bool {
	return err == ErrEmptyArgument
}

// UnknownFieldTypeError is returned when a field descriptor names a type
// the engine has no template for.
type UnknownFieldTypeError struct {
	Type  string
	Field string
}

func (e *UnknownFieldTypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("norm: unknown field type %q for %q", e.Type, e.Field)
	}
	return fmt.Sprintf("norm: unknown field type %q", e.Type)
}

func (e *UnknownFieldTypeError) Is(err error) bool {
	return err == ErrUnknownFieldType
}

// UnknownClauseError means a fragment reached the renderer without a rule.
// Buffers validate on append, so this is a programming error.
type UnknownClauseError struct {
	Engine string
	Kind   Clause
}

func (e *UnknownClauseError) Error() string {
	return fmt.Sprintf("norm: %s engine has no rule for clause %q", e.Engine, e.Kind)
}

func (e *UnknownClauseError) Is(err error) bool {
	return err == ErrUnknownClause
}
