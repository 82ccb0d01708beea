// Package ply reads and writes the fixed-layout binary PLY files produced by
// the motion capture pipeline: an ASCII header closed by an end_header line,
// followed by tightly packed little-endian vertex records carrying position,
// color and velocity.
package ply

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type NumericType int

const (
	Float32 NumericType = iota
	Uint8
)

// Width is the number of bytes a value of the type occupies on disk.
func (t NumericType) Width() int {
	switch t {
	case Float32:
		return 4
	case Uint8:
		return 1
	}
	panic(fmt.Sprintf("unknown numeric type: %d", t))
}

// PlyName is the type name used in "property" header lines.
func (t NumericType) PlyName() string {
	switch t {
	case Float32:
		return "float"
	case Uint8:
		return "uchar"
	}
	panic(fmt.Sprintf("unknown numeric type: %d", t))
}

func (t NumericType) descriptor(order binary.ByteOrder) string {
	switch t {
	case Float32:
		if order == binary.BigEndian {
			return ">f4"
		}
		return "<f4"
	case Uint8:
		return "u1"
	}
	panic(fmt.Sprintf("unknown numeric type: %d", t))
}

type Field struct {
	Name   string
	Offset int
	Type   NumericType
	Order  binary.ByteOrder
}

func (f Field) Width() int {
	return f.Type.Width()
}

// Layout is an ordered, unpadded record description. Offsets are explicit so
// nothing depends on how Go would lay out an equivalent struct.
type Layout []Field

// RecordLayout is x y z (float32), red green blue (uint8), vx vy vz (float32).
var RecordLayout = Layout{
	{Name: "x", Offset: 0, Type: Float32, Order: binary.LittleEndian},
	{Name: "y", Offset: 4, Type: Float32, Order: binary.LittleEndian},
	{Name: "z", Offset: 8, Type: Float32, Order: binary.LittleEndian},
	{Name: "red", Offset: 12, Type: Uint8},
	{Name: "green", Offset: 13, Type: Uint8},
	{Name: "blue", Offset: 14, Type: Uint8},
	{Name: "vx", Offset: 15, Type: Float32, Order: binary.LittleEndian},
	{Name: "vy", Offset: 19, Type: Float32, Order: binary.LittleEndian},
	{Name: "vz", Offset: 23, Type: Float32, Order: binary.LittleEndian},
}

// RecordSize is the on-disk size of one vertex record.
const RecordSize = 27

func (l Layout) Size() int {
	size := 0
	for _, f := range l {
		if end := f.Offset + f.Width(); end > size {
			size = end
		}
	}
	return size
}

func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// String renders the layout in the dtype notation the capture tooling prints,
// e.g. [('x', '<f4'), ('red', 'u1')].
func (l Layout) String() string {
	parts := make([]string, len(l))
	for i, f := range l {
		parts[i] = fmt.Sprintf("('%s', '%s')", f.Name, f.Type.descriptor(f.Order))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
