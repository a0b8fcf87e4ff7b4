package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeaderConfiguration is returned when header counts are negative
	// or exceed the grid's row or column count
	ErrInvalidHeaderConfiguration = errors.New("invalid header configuration")
	// ErrNoDataSource is returned when reloading without a data source
	ErrNoDataSource = errors.New("no data source set")
)

// HeaderError describes a rejected header configuration
type HeaderError struct {
	HeaderRows    int
	HeaderColumns int
	Rows          int
	Columns       int
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%v: %d header rows and %d header columns for a %dx%d grid",
		ErrInvalidHeaderConfiguration, e.HeaderRows, e.HeaderColumns, e.Rows, e.Columns)
}

// Unwrap lets errors.Is match ErrInvalidHeaderConfiguration
func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeaderConfiguration
}
