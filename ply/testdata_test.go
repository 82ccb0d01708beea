package ply

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalHeader = "ply\nformat binary_little_endian 1.0\nend_header\n"

var threeRecords = []Record{
	{X: 1.5, Y: -2.25, Z: 3, Red: 255, Green: 0, Blue: 12, VX: 0.125, VY: -0.5, VZ: 8},
	{X: -10, Y: 20.75, Z: 0, Red: 1, Green: 128, Blue: 254, VX: 3.5, VY: 0, VZ: -1},
	{X: 100, Y: 200, Z: 300, Red: 7, Green: 8, Blue: 9, VX: -0.25, VY: 0.75, VZ: 1e-3},
}

// packRecords lays out records by hand so the tests do not share the
// decoder's offset table.
func packRecords(records []Record) []byte {
	var buf bytes.Buffer
	put := func(v float32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
	for _, r := range records {
		put(r.X)
		put(r.Y)
		put(r.Z)
		buf.Write([]byte{r.Red, r.Green, r.Blue})
		put(r.VX)
		put(r.VY)
		put(r.VZ)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloud.ply")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}
