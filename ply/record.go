package ply

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/EliCDavis/bitlib"
)

type Record struct {
	X, Y, Z          float32
	Red, Green, Blue uint8
	VX, VY, VZ       float32
}

func (r Record) String() string {
	return fmt.Sprintf("(%g, %g, %g, %d, %d, %d, %g, %g, %g)",
		r.X, r.Y, r.Z, r.Red, r.Green, r.Blue, r.VX, r.VY, r.VZ)
}

// Columns holds every record field as its own slice. All slices have the
// same length and index i of each belongs to record i.
type Columns struct {
	X, Y, Z          []float32
	Red, Green, Blue []uint8
	VX, VY, VZ       []float32
}

func NewColumns(n int) *Columns {
	return &Columns{
		X: make([]float32, n), Y: make([]float32, n), Z: make([]float32, n),
		Red: make([]uint8, n), Green: make([]uint8, n), Blue: make([]uint8, n),
		VX: make([]float32, n), VY: make([]float32, n), VZ: make([]float32, n),
	}
}

func (c *Columns) Len() int {
	return len(c.X)
}

func (c *Columns) Record(i int) Record {
	return Record{
		X: c.X[i], Y: c.Y[i], Z: c.Z[i],
		Red: c.Red[i], Green: c.Green[i], Blue: c.Blue[i],
		VX: c.VX[i], VY: c.VY[i], VZ: c.VZ[i],
	}
}

func (c *Columns) set(i int, r Record) {
	c.X[i], c.Y[i], c.Z[i] = r.X, r.Y, r.Z
	c.Red[i], c.Green[i], c.Blue[i] = r.Red, r.Green, r.Blue
	c.VX[i], c.VY[i], c.VZ[i] = r.VX, r.VY, r.VZ
}

// Records converts the first n rows back into records. n is clamped to Len.
func (c *Columns) Records(n int) []Record {
	if n > c.Len() || n < 0 {
		n = c.Len()
	}
	out := make([]Record, n)
	for i := range out {
		out[i] = c.Record(i)
	}
	return out
}

// recordOrder is the byte order shared by every multi-byte field in
// RecordLayout.
var recordOrder binary.ByteOrder = binary.LittleEndian

func (r *Record) float32Field(name string) *float32 {
	switch name {
	case "x":
		return &r.X
	case "y":
		return &r.Y
	case "z":
		return &r.Z
	case "vx":
		return &r.VX
	case "vy":
		return &r.VY
	case "vz":
		return &r.VZ
	}
	panic("record has no float field " + name)
}

func (r *Record) uint8Field(name string) *uint8 {
	switch name {
	case "red":
		return &r.Red
	case "green":
		return &r.Green
	case "blue":
		return &r.Blue
	}
	panic("record has no uint8 field " + name)
}

// readRecord walks RecordLayout in offset order, so the reader must be
// positioned at the first byte of a record.
func readRecord(br *bitlib.Reader) Record {
	var r Record
	for _, f := range RecordLayout {
		switch f.Type {
		case Float32:
			*r.float32Field(f.Name) = br.Float32()
		case Uint8:
			*r.uint8Field(f.Name) = br.Byte()
		}
	}
	return r
}

func writeRecord(bw *bitlib.Writer, r Record) {
	for _, f := range RecordLayout {
		switch f.Type {
		case Float32:
			bw.Float32(*r.float32Field(f.Name))
		case Uint8:
			bw.Byte(*r.uint8Field(f.Name))
		}
	}
}

// DecodeRecord decodes one record from the first RecordSize bytes of b.
func DecodeRecord(b []byte) Record {
	br := bitlib.NewReader(bytes.NewReader(b[:RecordSize]), recordOrder)
	return readRecord(br)
}

// EncodeRecord writes r into the first RecordSize bytes of b.
func EncodeRecord(b []byte, r Record) {
	buf := bytes.NewBuffer(make([]byte, 0, RecordSize))
	writeRecord(bitlib.NewWriter(buf, recordOrder), r)
	copy(b[:RecordSize], buf.Bytes())
}

// RecordCount returns dataLen / RecordSize, or ErrMisalignedRecords when
// dataLen leaves a remainder.
func RecordCount(dataLen int64) (int, error) {
	if dataLen < 0 || dataLen%RecordSize != 0 {
		return 0, ErrMisalignedRecords
	}
	return int(dataLen / RecordSize), nil
}

const readChunkRecords = 4096

// ReadColumns reads exactly dataLen bytes of packed records from r.
func ReadColumns(r io.Reader, dataLen int64) (*Columns, error) {
	n, err := RecordCount(dataLen)
	if err != nil {
		return nil, err
	}

	cols := NewColumns(n)
	buf := make([]byte, readChunkRecords*RecordSize)
	for i := 0; i < n; {
		chunk := n - i
		if chunk > readChunkRecords {
			chunk = readChunkRecords
		}
		b := buf[:chunk*RecordSize]
		if _, err := io.ReadFull(r, b); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("reading record %d of %d: %w", i, n, err)
		}
		br := bitlib.NewReader(bytes.NewReader(b), recordOrder)
		for j := 0; j < chunk; j++ {
			cols.set(i+j, readRecord(br))
		}
		if err := br.Error(); err != nil {
			return nil, fmt.Errorf("decoding record %d of %d: %w", i, n, err)
		}
		i += chunk
	}
	return cols, nil
}

// ReadRecords is ReadColumns in row form.
func ReadRecords(r io.Reader, dataLen int64) ([]Record, error) {
	cols, err := ReadColumns(r, dataLen)
	if err != nil {
		return nil, err
	}
	return cols.Records(cols.Len()), nil
}

// Check reports columns whose lengths differ from X.
func (c *Columns) Check() error {
	n := len(c.X)
	lengths := map[string]int{
		"y": len(c.Y), "z": len(c.Z),
		"red": len(c.Red), "green": len(c.Green), "blue": len(c.Blue),
		"vx": len(c.VX), "vy": len(c.VY), "vz": len(c.VZ),
	}
	for _, f := range RecordLayout {
		if l, ok := lengths[f.Name]; ok && l != n {
			return fmt.Errorf("column %s has %d values, x has %d: %w", f.Name, l, n, ErrRaggedColumns)
		}
	}
	return nil
}
