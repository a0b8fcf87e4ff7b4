package geometry

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a frame is requested for an index outside the grid
var ErrIndexOutOfRange = errors.New("grid index out of range")

// IndexError reports the offending index and the bounds it was checked against
type IndexError struct {
	Row     int
	Column  int
	Rows    int
	Columns int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: (%d, %d) not in %dx%d", ErrIndexOutOfRange, e.Row, e.Column, e.Rows, e.Columns)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
