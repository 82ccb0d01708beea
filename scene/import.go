package scene

import (
	"fmt"

	"github.com/EliCDavis/vector/vector3"
	"github.com/recolude/plymotion/ply"
	"go.uber.org/zap"
)

const (
	DefaultObjectName = "PointCloud"
	ColorAttribute    = "color"
)

var velocityAttributes = [3]string{"vx", "vy", "vz"}

type Options struct {
	ObjectName string
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.ObjectName == "" {
		o.ObjectName = DefaultObjectName
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ColorChannel maps an 8 bit channel onto [0, 1].
func ColorChannel(v uint8) float32 {
	return float32(v) / 255
}

func Positions(cols *ply.Columns) []vector3.Float64 {
	positions := make([]vector3.Float64, cols.Len())
	for i := range positions {
		positions[i] = vector3.New(float64(cols.X[i]), float64(cols.Y[i]), float64(cols.Z[i]))
	}
	return positions
}

// Colors builds the RGBA color attribute. Alpha is always 1.
func Colors(cols *ply.Columns) Attribute {
	data := make([]float32, cols.Len()*4)
	for i := 0; i < cols.Len(); i++ {
		data[i*4] = ColorChannel(cols.Red[i])
		data[i*4+1] = ColorChannel(cols.Green[i])
		data[i*4+2] = ColorChannel(cols.Blue[i])
		data[i*4+3] = 1
	}
	return Attribute{Name: ColorAttribute, Type: FloatColor, Data: data}
}

func Velocities(cols *ply.Columns) [3]Attribute {
	components := [3][]float32{cols.VX, cols.VY, cols.VZ}
	var attrs [3]Attribute
	for i, name := range velocityAttributes {
		data := make([]float32, len(components[i]))
		copy(data, components[i])
		attrs[i] = Attribute{Name: name, Type: Float, Data: data}
	}
	return attrs
}

// Import replaces any object named opts.ObjectName with a point mesh built
// from cols, carrying a color attribute and one scalar attribute per
// velocity component.
func Import(host Host, cols *ply.Columns, opts Options) error {
	if err := cols.Check(); err != nil {
		return err
	}
	opts = opts.withDefaults()
	log := opts.Logger.With(zap.String("object", opts.ObjectName))

	log.Info("loaded points", zap.Int("count", cols.Len()))
	if cols.Len() > 0 {
		first := cols.Record(0)
		log.Info("first point",
			zap.Float32s("position", []float32{first.X, first.Y, first.Z}),
			zap.Uint8s("color", []uint8{first.Red, first.Green, first.Blue}),
			zap.Float32s("velocity", []float32{first.VX, first.VY, first.VZ}),
		)
	}

	if err := host.RemoveNamed(opts.ObjectName); err != nil {
		return fmt.Errorf("removing existing %q: %w", opts.ObjectName, err)
	}

	if err := host.CreatePointMesh(opts.ObjectName, Positions(cols)); err != nil {
		return fmt.Errorf("creating point mesh %q: %w", opts.ObjectName, err)
	}

	attrs := []Attribute{Colors(cols)}
	for _, v := range Velocities(cols) {
		attrs = append(attrs, v)
	}
	for _, attr := range attrs {
		if err := host.SetPerPointAttribute(opts.ObjectName, attr); err != nil {
			return fmt.Errorf("setting attribute %q: %w", attr.Name, err)
		}
	}

	log.Info("created point cloud object", zap.Int("attributes", len(attrs)))
	return nil
}
