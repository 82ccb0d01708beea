package scene

import (
	"bytes"
	"io"

	polyply "github.com/EliCDavis/polyform/formats/ply"
	"github.com/recolude/rap/format"
	"github.com/recolude/rap/format/encoding"
	eventEnc "github.com/recolude/rap/format/encoding/event"
	rapio "github.com/recolude/rap/format/io"
	"github.com/recolude/rap/format/metadata"
)

func WritePLY(w io.Writer, obj *Object) error {
	return polyply.WriteBinary(w, obj.Mesh())
}

func ObjectToRapBinary(obj *Object) (rapio.Binary, error) {
	meshData := bytes.Buffer{}
	if err := WritePLY(&meshData, obj); err != nil {
		return rapio.Binary{}, err
	}

	props := map[string]metadata.Property{
		"points": metadata.NewIntProperty(len(obj.Positions)),
		"mesh":   metadata.NewStringProperty(obj.MeshName),
	}
	for _, a := range obj.Attributes {
		props["attribute."+a.Name] = metadata.NewStringProperty(a.Type.String())
	}

	return rapio.NewBinary(obj.Name+".ply", meshData.Bytes(), metadata.NewBlock(props)), nil
}

// WriteRecording writes a RAP recording holding obj as a single binary.
func WriteRecording(w io.Writer, obj *Object) error {
	bin, err := ObjectToRapBinary(obj)
	if err != nil {
		return err
	}

	recording := format.NewRecording(
		obj.Name,
		obj.Name,
		[]format.CaptureCollection{},
		[]format.Recording{},
		metadata.NewBlock(map[string]metadata.Property{
			"points": metadata.NewIntProperty(len(obj.Positions)),
		}),
		[]format.Binary{bin},
		[]format.BinaryReference{},
	)

	rapWriter := rapio.NewWriter(
		[]encoding.Encoder{
			eventEnc.NewEncoder(),
		},
		true,
		w,
		rapio.BST16,
	)

	_, err = rapWriter.Write(recording)
	return err
}
