package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedShape means no alias block and no insertion point were found.
	ErrUnexpectedShape = errors.New("unexpected file shape")
	// ErrSchema means the patched document failed schema validation.
	ErrSchema = errors.New("schema validation failed")
)

// Error is a read, write, shape, or schema failure for one config file.
type Error struct {
	Tool ToolName
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Tool, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
