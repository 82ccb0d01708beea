package ply

import (
	"bufio"
	"fmt"
	"io"

	"github.com/EliCDavis/bitlib"
)

// Encode writes cols in the same format Load reads: a binary_little_endian
// 1.0 header declaring RecordLayout, then the packed records.
func Encode(w io.Writer, cols *Columns, comments ...string) error {
	if err := cols.Check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format binary_little_endian 1.0")
	for _, c := range comments {
		fmt.Fprintf(bw, "comment %s\n", c)
	}
	fmt.Fprintf(bw, "element vertex %d\n", cols.Len())
	for _, f := range RecordLayout {
		fmt.Fprintf(bw, "property %s %s\n", f.Type.PlyName(), f.Name)
	}
	fmt.Fprintln(bw, endHeader)

	rw := bitlib.NewWriter(bw, recordOrder)
	for i := 0; i < cols.Len(); i++ {
		writeRecord(rw, cols.Record(i))
	}
	if err := rw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
