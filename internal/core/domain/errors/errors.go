package errors

import "fmt"

// Kind classifies domain failures independently of the aggregate that produced them.
type Kind string

func (k Kind) Error() string {
	return string(k)
}

const (
	ErrNotFound       Kind = "not found"
	ErrExpired        Kind = "expired"
	ErrDeliveryFailed Kind = "delivery failed"
	ErrConfigMissing  Kind = "config missing"
)

type kindError struct {
	kind Kind
	msg  string
}

// New returns an error with the given message that matches kind with errors.Is.
func New(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// KindOf returns the kind of err, or an empty Kind if err has none.
func KindOf(err error) Kind {
	for err != nil {
		if k, ok := err.(Kind); ok {
			return k
		}
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				if k := KindOf(inner); k != "" {
					return k
				}
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}

type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return e.msg
}

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}
