package physics

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrDomain         = errors.New("domain error")
	ErrConfiguration  = errors.New("configuration error")
	ErrIterationLimit = errors.New("iteration limit exceeded")
)

// Error records which operation failed and why.
type Error struct {
	Kind error
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func domainError(op, format string, args ...any) error {
	return &Error{Kind: ErrDomain, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func configError(op, format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// DomainError builds an ErrDomain error for callers outside this package.
func DomainError(op, format string, args ...any) error {
	return domainError(op, format, args...)
}

// ConfigError builds an ErrConfiguration error for callers outside this package.
func ConfigError(op, format string, args ...any) error {
	return configError(op, format, args...)
}
