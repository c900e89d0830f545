package core

import "errors"

var (
	ErrNotFound           = errors.New("todos: not found")
	ErrMethodNotAllowed   = errors.New("todos: method not allowed")
	ErrMissingSearchField = errors.New(`todos: missing form field "search"`)
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMissingSearchField(err error) bool {
	return errors.Is(err, ErrMissingSearchField)
}
