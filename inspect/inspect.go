// Package inspect prints a human readable sample of a ply file.
package inspect

import (
	"bufio"
	"fmt"
	"io"

	"github.com/recolude/plymotion/ply"
)

const DefaultLines = 5

// Print writes the record layout followed by the first n records of f.
func Print(w io.Writer, f *ply.File, n int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "\n=== Vertex data type ===")
	fmt.Fprintf(bw, "%s (%d bytes/record, %d records)\n", ply.RecordLayout, ply.RecordSize, f.Len())

	records := f.Columns.Records(n)
	fmt.Fprintf(bw, "\n=== First %d vertices ===\n", n)
	for _, r := range records {
		fmt.Fprintln(bw, r)
	}

	return bw.Flush()
}
