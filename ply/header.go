package ply

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

const endHeader = "end_header"

type Property struct {
	Type string
	Name string
}

type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// Header is the metadata found before end_header. Size is the byte offset of
// the first record.
type Header struct {
	Size          int64
	Magic         bool
	Format        string
	FormatVersion string
	Comments      []string
	ObjInfo       []string
	Elements      []Element
}

// DeclaredVertices returns the count from the "element vertex" line, if any.
func (h *Header) DeclaredVertices() (int, bool) {
	for _, e := range h.Elements {
		if e.Name == "vertex" && e.Count >= 0 {
			return e.Count, true
		}
	}
	return 0, false
}

// ScanHeader consumes br up to and including the end_header line. Records
// must be read from the same reader afterwards.
func ScanHeader(br *bufio.Reader) (*Header, error) {
	h := &Header{}
	for {
		line, err := br.ReadBytes('\n')
		h.Size += int64(len(line))
		if len(line) > 0 {
			if string(bytes.TrimSpace(line)) == endHeader {
				return h, nil
			}
			h.parseLine(string(line))
		}
		if errors.Is(err, io.EOF) {
			return nil, &MalformedError{Offset: h.Size, Err: ErrNoEndHeader}
		}
		if err != nil {
			return nil, err
		}
	}
}

func (h *Header) parseLine(line string) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "ply":
		h.Magic = true
	case "format":
		if len(args) > 1 {
			h.Format = args[1]
		}
		if len(args) > 2 {
			h.FormatVersion = args[2]
		}
	case "comment":
		h.Comments = append(h.Comments, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "comment")))
	case "obj_info":
		h.ObjInfo = append(h.ObjInfo, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "obj_info")))
	case "element":
		e := Element{Count: -1}
		if len(args) > 1 {
			e.Name = args[1]
		}
		if len(args) > 2 {
			if n, err := strconv.Atoi(args[2]); err == nil {
				e.Count = n
			}
		}
		h.Elements = append(h.Elements, e)
	case "property":
		if len(h.Elements) == 0 || len(args) < 3 {
			return
		}
		last := &h.Elements[len(h.Elements)-1]
		last.Properties = append(last.Properties, Property{
			Type: strings.Join(args[1:len(args)-1], " "),
			Name: args[len(args)-1],
		})
	}
}
