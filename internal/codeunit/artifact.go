package codeunit

import (
	"bytes"
	"errors"
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is the artifact schema written by Encode.
// Increment when Document changes shape.
const SchemaVersion uint16 = 1

// ErrSchema reports an artifact that cannot be decoded into a unit graph.
var ErrSchema = errors.New("codeunit: bad artifact")

// Document is the on-disk form of a unit graph. Units reference nested units
// by index into Units.
type Document struct {
	Schema uint16
	Source string
	Root   uint32
	Units  []UnitRecord
}

// UnitRecord is one unit of a Document.
type UnitRecord struct {
	Name      string
	FirstLine uint32
	Starts    []StartRecord
	Consts    []uint32
}

// StartRecord is the stored form of a LineStart.
type StartRecord struct {
	Offset uint32
	Line   uint32
}

// Encode flattens the graph rooted at root into a Document.
func Encode(source string, root *Unit) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("encode %s: nil root", source)
	}
	doc := &Document{Schema: SchemaVersion, Source: source}
	slots := make(map[*Unit]uint32)
	var order []*Unit
	var err error
	Walk(root, func(u, _ *Unit) bool {
		var slot uint32
		slot, err = safecast.Conv[uint32](len(order))
		if err != nil {
			return false
		}
		slots[u] = slot
		order = append(order, u)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", source, err)
	}

	doc.Units = make([]UnitRecord, len(order))
	for i, u := range order {
		rec := UnitRecord{Name: u.Name}
		if rec.FirstLine, err = safecast.Conv[uint32](u.FirstLine); err != nil {
			return nil, fmt.Errorf("encode %s: unit %s first line: %w", source, u.Name, err)
		}
		rec.Starts = make([]StartRecord, 0, len(u.Lines))
		for _, ls := range u.Lines {
			off, err := safecast.Conv[uint32](ls.Offset)
			if err != nil {
				return nil, fmt.Errorf("encode %s: unit %s offset: %w", source, u.Name, err)
			}
			line, err := safecast.Conv[uint32](ls.Line)
			if err != nil {
				return nil, fmt.Errorf("encode %s: unit %s line: %w", source, u.Name, err)
			}
			rec.Starts = append(rec.Starts, StartRecord{Offset: off, Line: line})
		}
		for _, c := range u.Consts {
			if c == nil {
				continue
			}
			rec.Consts = append(rec.Consts, slots[c])
		}
		doc.Units[i] = rec
	}
	return doc, nil
}

// Decode rebuilds the unit graph of doc and returns its root.
func Decode(doc *Document) (*Unit, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrSchema)
	}
	if doc.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: schema %d, want %d", ErrSchema, doc.Schema, SchemaVersion)
	}
	if int(doc.Root) >= len(doc.Units) {
		return nil, fmt.Errorf("%w: root %d of %d units", ErrSchema, doc.Root, len(doc.Units))
	}

	units := make([]*Unit, len(doc.Units))
	for i := range units {
		units[i] = &Unit{}
	}
	for i, rec := range doc.Units {
		u := units[i]
		u.Name = rec.Name
		u.FirstLine = int(rec.FirstLine)
		u.Lines = make([]LineStart, len(rec.Starts))
		for j, s := range rec.Starts {
			u.Lines[j] = LineStart{Offset: int(s.Offset), Line: int(s.Line)}
		}
		u.Consts = make([]*Unit, 0, len(rec.Consts))
		for _, ref := range rec.Consts {
			if int(ref) >= len(units) {
				return nil, fmt.Errorf("%w: unit %q references %d of %d", ErrSchema, rec.Name, ref, len(units))
			}
			u.Consts = append(u.Consts, units[ref])
		}
	}
	return units[doc.Root], nil
}

// Marshal encodes the graph rooted at root as msgpack.
func Marshal(source string, root *Unit) ([]byte, error) {
	doc, err := Encode(source, root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode %s: %w", source, err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a msgpack artifact.
func Unmarshal(data []byte) (*Document, *Unit, error) {
	var doc Document
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	root, err := Decode(&doc)
	if err != nil {
		return nil, nil, err
	}
	return &doc, root, nil
}
