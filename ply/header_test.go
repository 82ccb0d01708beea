package ply

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanHeaderOffset(t *testing.T) {
	data := minimalHeader + string(packRecords(threeRecords))
	br := bufio.NewReader(strings.NewReader(data))

	h, err := ScanHeader(br)
	require.NoError(t, err)
	assert.Equal(t, int64(len(minimalHeader)), h.Size)
	assert.True(t, h.Magic)
	assert.Equal(t, "binary_little_endian", h.Format)
	assert.Equal(t, "1.0", h.FormatVersion)

	rest, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, packRecords(threeRecords), rest)
}

func TestScanHeaderTrimsSentinel(t *testing.T) {
	header := "ply\r\n  end_header \r\n"
	h, err := ScanHeader(bufio.NewReader(strings.NewReader(header + "xyz")))
	require.NoError(t, err)
	assert.Equal(t, int64(len(header)), h.Size)
}

func TestScanHeaderSentinelAtEOF(t *testing.T) {
	header := "ply\nend_header"
	h, err := ScanHeader(bufio.NewReader(strings.NewReader(header)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(header)), h.Size)
}

func TestScanHeaderMetadata(t *testing.T) {
	header := strings.Join([]string{
		"ply",
		"format binary_little_endian 1.0",
		"comment frame 0860",
		"obj_info filtered",
		"element vertex 42",
		"property float x",
		"property uchar red",
		"property list uchar int vertex_indices",
		"end_header",
		"",
	}, "\n")

	h, err := ScanHeader(bufio.NewReader(strings.NewReader(header)))
	require.NoError(t, err)
	assert.Equal(t, []string{"frame 0860"}, h.Comments)
	assert.Equal(t, []string{"filtered"}, h.ObjInfo)
	require.Len(t, h.Elements, 1)
	assert.Equal(t, []Property{
		{Type: "float", Name: "x"},
		{Type: "uchar", Name: "red"},
		{Type: "list uchar int", Name: "vertex_indices"},
	}, h.Elements[0].Properties)

	n, ok := h.DeclaredVertices()
	assert.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestScanHeaderWithoutSentinel(t *testing.T) {
	testCases := map[string]string{
		"Empty":       "",
		"HeaderOnly":  "ply\nformat binary_little_endian 1.0\n",
		"Binary":      "ply\n" + string(packRecords(threeRecords)),
		"SentinelSub": "ply\nend_header_extra\n",
	}
	for name, data := range testCases {
		data := data
		t.Run(name, func(t *testing.T) {
			_, err := ScanHeader(bufio.NewReader(strings.NewReader(data)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoEndHeader))

			var malformed *MalformedError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, int64(len(data)), malformed.Offset)
		})
	}
}
