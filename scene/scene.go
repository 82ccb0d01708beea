// Package scene turns decoded ply columns into a point cloud object inside a
// 3D host. The host is reached only through the Host interface so the import
// logic runs the same against a real authoring tool or the in-memory store.
package scene

import (
	"fmt"

	"github.com/EliCDavis/vector/vector3"
)

type AttributeType int

const (
	// Float is one scalar per point.
	Float AttributeType = iota
	// FloatColor is RGBA, four floats per point.
	FloatColor
)

func (t AttributeType) Components() int {
	switch t {
	case Float:
		return 1
	case FloatColor:
		return 4
	}
	panic(fmt.Sprintf("unknown attribute type: %d", t))
}

func (t AttributeType) String() string {
	switch t {
	case Float:
		return "FLOAT"
	case FloatColor:
		return "FLOAT_COLOR"
	}
	return fmt.Sprintf("AttributeType(%d)", int(t))
}

// Attribute is a named per-point attribute with Data laid out point-major.
type Attribute struct {
	Name string
	Type AttributeType
	Data []float32
}

// Len is the number of points the attribute covers.
func (a Attribute) Len() int {
	return len(a.Data) / a.Type.Components()
}

type Host interface {
	// RemoveNamed deletes the object with the given name. A missing object
	// is not an error.
	RemoveNamed(name string) error
	// CreatePointMesh adds an object whose mesh has vertices only.
	CreatePointMesh(name string, positions []vector3.Float64) error
	SetPerPointAttribute(object string, attr Attribute) error
}
