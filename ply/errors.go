package ply

import (
	"errors"
	"fmt"
)

var (
	ErrNoEndHeader       = errors.New("end_header not found")
	ErrMisalignedRecords = errors.New("data length is not a multiple of the record size")
	ErrRaggedColumns     = errors.New("columns have different lengths")
)

// MalformedError reports a file whose structure does not match the record
// format. Err is one of the package sentinels.
type MalformedError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed ply at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("malformed ply %s at byte %d: %v", e.Path, e.Offset, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
