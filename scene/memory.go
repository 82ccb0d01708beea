package scene

import (
	"errors"
	"fmt"

	"github.com/EliCDavis/polyform/modeling"
	"github.com/EliCDavis/vector/vector3"
)

var (
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
	ErrLengthMismatch = errors.New("attribute length does not match vertex count")
)

type Object struct {
	Name       string
	MeshName   string
	Positions  []vector3.Float64
	Attributes []Attribute
}

func (o *Object) Attribute(name string) (Attribute, bool) {
	for _, a := range o.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Mesh materializes the object as a polyform point cloud. The color
// attribute maps onto modeling.ColorAttribute without its alpha channel,
// scalar attributes keep their names.
func (o *Object) Mesh() modeling.Mesh {
	v3Data := map[string][]vector3.Float64{
		modeling.PositionAttribute: o.Positions,
	}
	v1Data := map[string][]float64{}

	for _, a := range o.Attributes {
		switch a.Type {
		case FloatColor:
			name := a.Name
			if name == ColorAttribute {
				name = modeling.ColorAttribute
			}
			rgb := make([]vector3.Float64, a.Len())
			for i := range rgb {
				rgb[i] = vector3.New(float64(a.Data[i*4]), float64(a.Data[i*4+1]), float64(a.Data[i*4+2]))
			}
			v3Data[name] = rgb
		case Float:
			values := make([]float64, len(a.Data))
			for i, v := range a.Data {
				values[i] = float64(v)
			}
			v1Data[a.Name] = values
		}
	}

	return modeling.NewPointCloud(v3Data, nil, v1Data, nil)
}

// MemoryHost is a named object store standing in for an authoring tool's
// scene.
type MemoryHost struct {
	objects map[string]*Object
	order   []string
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{objects: make(map[string]*Object)}
}

func (h *MemoryHost) Lookup(name string) (*Object, bool) {
	obj, ok := h.objects[name]
	return obj, ok
}

// Objects returns objects in creation order.
func (h *MemoryHost) Objects() []*Object {
	out := make([]*Object, 0, len(h.order))
	for _, name := range h.order {
		out = append(out, h.objects[name])
	}
	return out
}

func (h *MemoryHost) RemoveNamed(name string) error {
	obj, ok := h.Lookup(name)
	if !ok {
		return nil
	}
	h.remove(obj)
	return nil
}

func (h *MemoryHost) remove(obj *Object) {
	delete(h.objects, obj.Name)
	for i, name := range h.order {
		if name == obj.Name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *MemoryHost) CreatePointMesh(name string, positions []vector3.Float64) error {
	if _, ok := h.objects[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrObjectExists)
	}
	h.objects[name] = &Object{
		Name:      name,
		MeshName:  name + "Mesh",
		Positions: positions,
	}
	h.order = append(h.order, name)
	return nil
}

func (h *MemoryHost) SetPerPointAttribute(object string, attr Attribute) error {
	obj, ok := h.objects[object]
	if !ok {
		return fmt.Errorf("%q: %w", object, ErrObjectNotFound)
	}
	if len(attr.Data)%attr.Type.Components() != 0 || attr.Len() != len(obj.Positions) {
		return fmt.Errorf("%s has %d points, mesh has %d: %w", attr.Name, attr.Len(), len(obj.Positions), ErrLengthMismatch)
	}

	for i, a := range obj.Attributes {
		if a.Name == attr.Name {
			obj.Attributes[i] = attr
			return nil
		}
	}
	obj.Attributes = append(obj.Attributes, attr)
	return nil
}
