package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

type File struct {
	Path    string
	Size    int64
	Header  *Header
	Columns *Columns
}

// Len is the number of records.
func (f *File) Len() int {
	return f.Columns.Len()
}

const binaryLittleEndian = "binary_little_endian"

// Inconsistencies lists header declarations that disagree with how the
// records were decoded. Records are always decoded as RecordLayout and
// counted from the file size, so these are warnings, not errors.
func (f *File) Inconsistencies() []string {
	var out []string
	if f.Header.Format != "" && f.Header.Format != binaryLittleEndian {
		out = append(out, fmt.Sprintf("header declares format %s, records were decoded as %s", f.Header.Format, binaryLittleEndian))
	}
	if declared, ok := f.Header.DeclaredVertices(); ok && declared != f.Len() {
		out = append(out, fmt.Sprintf("header declares %d vertices, file size holds %d records", declared, f.Len()))
	}
	return out
}

// Load reads the whole file through one handle, which is closed before
// returning.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, err
	}

	f, err := Decode(fh, info.Size())
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Decode reads a header and size-header.Size bytes of records from r, where
// size is the total stream length.
func Decode(r io.Reader, size int64) (*File, error) {
	br := bufio.NewReader(r)
	header, err := ScanHeader(br)
	if err != nil {
		return nil, err
	}

	cols, err := ReadColumns(br, size-header.Size)
	if errors.Is(err, ErrMisalignedRecords) {
		return nil, &MalformedError{Offset: header.Size, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	return &File{
		Size:    size,
		Header:  header,
		Columns: cols,
	}, nil
}
