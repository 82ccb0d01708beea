package scene

import (
	"errors"
	"testing"

	"github.com/EliCDavis/vector/vector3"
	"github.com/recolude/plymotion/ply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleColumns() *ply.Columns {
	return &ply.Columns{
		X:     []float32{1, 2, 3},
		Y:     []float32{4, 5, 6},
		Z:     []float32{7, 8, 9},
		Red:   []uint8{0, 255, 51},
		Green: []uint8{255, 0, 102},
		Blue:  []uint8{0, 0, 255},
		VX:    []float32{0.1, 0.2, 0.3},
		VY:    []float32{-1, -2, -3},
		VZ:    []float32{10, 20, 30},
	}
}

func TestColorChannel(t *testing.T) {
	assert.Equal(t, float32(0), ColorChannel(0))
	assert.Equal(t, float32(1), ColorChannel(255))
	assert.Equal(t, ColorChannel(51), ColorChannel(51))
	assert.InDelta(t, 0.2, ColorChannel(51), 1e-6)
}

func TestColors(t *testing.T) {
	attr := Colors(sampleColumns())
	assert.Equal(t, ColorAttribute, attr.Name)
	assert.Equal(t, FloatColor, attr.Type)
	assert.Equal(t, 3, attr.Len())
	assert.Equal(t, []float32{0, 1, 0, 1}, attr.Data[0:4])
	assert.Equal(t, []float32{1, 0, 0, 1}, attr.Data[4:8])
	assert.Equal(t, float32(1), attr.Data[10])
	assert.Equal(t, float32(1), attr.Data[11])
}

type call struct {
	method string
	name   string
	n      int
}

type recordingHost struct {
	calls  []call
	failOn string
}

func (h *recordingHost) RemoveNamed(name string) error {
	h.calls = append(h.calls, call{"RemoveNamed", name, 0})
	if h.failOn == "RemoveNamed" {
		return errors.New("remove failed")
	}
	return nil
}

func (h *recordingHost) CreatePointMesh(name string, positions []vector3.Float64) error {
	h.calls = append(h.calls, call{"CreatePointMesh", name, len(positions)})
	return nil
}

func (h *recordingHost) SetPerPointAttribute(object string, attr Attribute) error {
	h.calls = append(h.calls, call{"SetPerPointAttribute", attr.Name, attr.Len()})
	if h.failOn == attr.Name {
		return errors.New("attribute rejected")
	}
	return nil
}

func TestImportCallOrder(t *testing.T) {
	host := &recordingHost{}
	require.NoError(t, Import(host, sampleColumns(), Options{}))

	assert.Equal(t, []call{
		{"RemoveNamed", DefaultObjectName, 0},
		{"CreatePointMesh", DefaultObjectName, 3},
		{"SetPerPointAttribute", "color", 3},
		{"SetPerPointAttribute", "vx", 3},
		{"SetPerPointAttribute", "vy", 3},
		{"SetPerPointAttribute", "vz", 3},
	}, host.calls)
}

func TestImportStopsOnHostError(t *testing.T) {
	host := &recordingHost{failOn: "vy"}
	err := Import(host, sampleColumns(), Options{ObjectName: "Frame"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"vy"`)
	assert.Len(t, host.calls, 5)

	host = &recordingHost{failOn: "RemoveNamed"}
	require.Error(t, Import(host, sampleColumns(), Options{}))
	assert.Len(t, host.calls, 1)
}

func TestImportIntoMemoryHost(t *testing.T) {
	host := NewMemoryHost()
	cols := sampleColumns()
	require.NoError(t, Import(host, cols, Options{ObjectName: "Frame"}))

	obj, ok := host.Lookup("Frame")
	require.True(t, ok)
	assert.Equal(t, "FrameMesh", obj.MeshName)
	require.Len(t, obj.Positions, 3)
	for i, p := range obj.Positions {
		assert.Equal(t, float64(cols.X[i]), p.X())
		assert.Equal(t, float64(cols.Y[i]), p.Y())
		assert.Equal(t, float64(cols.Z[i]), p.Z())
	}

	require.Len(t, obj.Attributes, 4)
	for _, a := range obj.Attributes {
		assert.Equal(t, 3, a.Len(), a.Name)
	}

	vx, ok := obj.Attribute("vx")
	require.True(t, ok)
	assert.Equal(t, Float, vx.Type)
	assert.Equal(t, cols.VX, vx.Data)
	vz, _ := obj.Attribute("vz")
	assert.Equal(t, cols.VZ, vz.Data)
}

func TestImportReplacesExisting(t *testing.T) {
	host := NewMemoryHost()
	require.NoError(t, host.CreatePointMesh("Other", nil))
	require.NoError(t, Import(host, sampleColumns(), Options{}))

	small := &ply.Columns{
		X: []float32{1}, Y: []float32{1}, Z: []float32{1},
		Red: []uint8{1}, Green: []uint8{1}, Blue: []uint8{1},
		VX: []float32{1}, VY: []float32{1}, VZ: []float32{1},
	}
	require.NoError(t, Import(host, small, Options{}))

	obj, ok := host.Lookup(DefaultObjectName)
	require.True(t, ok)
	assert.Len(t, obj.Positions, 1)

	objects := host.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, "Other", objects[0].Name)
	assert.Equal(t, DefaultObjectName, objects[1].Name)
}

func TestImportLogsFirstPoint(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, Import(NewMemoryHost(), sampleColumns(), Options{Logger: zap.New(core)}))

	loaded := logs.FilterMessage("loaded points").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(3), loaded[0].ContextMap()["count"])
	assert.Equal(t, 1, logs.FilterMessage("first point").Len())
}

func TestImportEmpty(t *testing.T) {
	host := NewMemoryHost()
	require.NoError(t, Import(host, ply.NewColumns(0), Options{}))

	obj, ok := host.Lookup(DefaultObjectName)
	require.True(t, ok)
	assert.Empty(t, obj.Positions)
	assert.Len(t, obj.Attributes, 4)
}

func TestImportRaggedColumns(t *testing.T) {
	cols := sampleColumns()
	cols.VY = cols.VY[:1]

	host := &recordingHost{}
	err := Import(host, cols, Options{})
	assert.ErrorIs(t, err, ply.ErrRaggedColumns)
	assert.Empty(t, host.calls)
}
