package reader

import (
	"bufio"
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/protocol"
)

var unmarshaller = jsoniter.ConfigCompatibleWithStandardLibrary

// readerBufferSize is the initial size of the line buffer. Lines longer than this are
// still read in full.
const readerBufferSize = 1 << 16

// record is the union of every field the supported labels can carry. Fields required by
// some label are pointers so that absence can be told apart from a zero value.
type record struct {
	ID         *protocol.ID        `json:"id"`
	Type       *string             `json:"type"`
	Label      *string             `json:"label"`
	URI        *string             `json:"uri"`
	LanguageID string              `json:"languageId"`
	Start      *protocol.Pos       `json:"start"`
	End        *protocol.Pos       `json:"end"`
	Result     jsoniter.RawMessage `json:"result"`
	OutV       *protocol.ID        `json:"outV"`
	InV        *protocol.ID        `json:"inV"`
	InVs       []protocol.ID       `json:"inVs"`
	Property   string              `json:"property"`
	Shard      jsoniter.RawMessage `json:"shard"`
	Document   jsoniter.RawMessage `json:"document"`
}

// Read decodes each non-blank line of r into a vertex or edge and passes it to fn in
// file order. Reading stops at the first malformed record, at the first error returned
// by fn, or at the first read error.
func Read(r io.Reader, fn func(element protocol.Element) error) error {
	br := bufio.NewReaderSize(r, readerBufferSize)

	for lineNumber := 1; ; lineNumber++ {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "reading index")
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			element, decodeErr := Decode(lineNumber, trimmed)
			if decodeErr != nil {
				return decodeErr
			}

			if fnErr := fn(element); fnErr != nil {
				return fnErr
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

// ReadAll decodes every record of r.
func ReadAll(r io.Reader) (elements []protocol.Element, _ error) {
	err := Read(r, func(element protocol.Element) error {
		elements = append(elements, element)
		return nil
	})

	return elements, err
}

// Decode converts a single JSON record into its vertex or edge variant. The given line
// number is attached to any error.
func Decode(lineNumber int, line []byte) (protocol.Element, error) {
	var rec record
	if err := unmarshaller.Unmarshal(line, &rec); err != nil {
		return nil, &MalformedRecordError{Line: lineNumber, Err: err}
	}

	d := decoder{line: lineNumber, rec: &rec}
	for _, field := range []struct {
		name    string
		missing bool
	}{
		{"id", rec.ID == nil},
		{"type", rec.Type == nil},
		{"label", rec.Label == nil},
	} {
		if field.missing {
			return nil, d.missing(field.name)
		}
	}

	switch protocol.ElementType(*rec.Type) {
	case protocol.ElementVertex:
		return d.vertex()
	case protocol.ElementEdge:
		return d.edge()
	}

	return nil, &MalformedRecordError{Line: lineNumber, Err: errors.Errorf("unknown element type %q", *rec.Type)}
}

type decoder struct {
	line int
	rec  *record
}

func (d decoder) missing(field string) error {
	err := &MissingFieldError{Line: d.line, Field: field}
	if d.rec.Type != nil {
		err.Type = *d.rec.Type
	}
	if d.rec.Label != nil {
		err.Label = *d.rec.Label
	}

	return err
}

func (d decoder) malformed(err error) error {
	return &MalformedRecordError{Line: d.line, Err: err}
}

func (d decoder) vertex() (protocol.Vertex, error) {
	id := *d.rec.ID

	switch label := protocol.VertexLabel(*d.rec.Label); label {
	case protocol.VertexDocument:
		if d.rec.URI == nil {
			return nil, d.missing("uri")
		}
		return protocol.Document{ID: id, URI: *d.rec.URI, LanguageID: d.rec.LanguageID}, nil

	case protocol.VertexRange:
		if d.rec.Start == nil {
			return nil, d.missing("start")
		}
		if d.rec.End == nil {
			return nil, d.missing("end")
		}
		return protocol.Range{ID: id, Start: *d.rec.Start, End: *d.rec.End}, nil

	case protocol.VertexResultSet:
		return protocol.ResultSet{ID: id}, nil

	case protocol.VertexHoverResult:
		contents, err := d.hoverContents()
		if err != nil {
			return nil, err
		}
		return protocol.HoverResult{ID: id, Contents: contents}, nil

	case protocol.VertexReferenceResult:
		return protocol.ReferenceResult{ID: id}, nil

	case protocol.VertexDefinitionResult:
		return protocol.DefinitionResult{ID: id}, nil

	default:
		if protocol.IsOpaqueVertexLabel(label) {
			return protocol.OpaqueVertex{ID: id, Label: label}, nil
		}
		return nil, d.malformed(errors.Errorf("unknown vertex label %q", label))
	}
}

func (d decoder) edge() (protocol.Edge, error) {
	id := *d.rec.ID
	if d.rec.OutV == nil {
		return nil, d.missing("outV")
	}
	outV := *d.rec.OutV

	targets := d.rec.InVs
	if targets == nil {
		if d.rec.InV == nil {
			return nil, d.missing("inV")
		}
		targets = []protocol.ID{*d.rec.InV}
	}

	switch label := protocol.EdgeLabel(*d.rec.Label); label {
	case protocol.EdgeContains:
		return protocol.Contains{ID: id, OutV: outV, InVs: targets}, nil

	case protocol.EdgeItem:
		item := protocol.Item{ID: id, OutV: outV, InVs: targets, Property: protocol.ItemProperty(d.rec.Property)}

		shard := d.rec.Shard
		if len(shard) == 0 {
			shard = d.rec.Document
		}
		if len(shard) > 0 && string(shard) != "null" {
			if err := unmarshaller.Unmarshal(shard, &item.Shard); err != nil {
				return nil, d.malformed(errors.Wrap(err, "shard"))
			}
			item.HasShard = true
		}
		return item, nil

	case protocol.EdgeNext, protocol.EdgeTextDocumentHover, protocol.EdgeTextDocumentReferences, protocol.EdgeTextDocumentDefinition:
		if len(targets) == 0 {
			return nil, d.missing("inV")
		}
		return singleTargetEdge(label, id, outV, targets[0]), nil

	default:
		if protocol.IsOpaqueEdgeLabel(label) {
			return protocol.OpaqueEdge{ID: id, Label: label, OutV: outV, InVs: targets}, nil
		}
		return nil, d.malformed(errors.Errorf("unknown edge label %q", label))
	}
}

func singleTargetEdge(label protocol.EdgeLabel, id, outV, inV protocol.ID) protocol.Edge {
	switch label {
	case protocol.EdgeNext:
		return protocol.Next{ID: id, OutV: outV, InV: inV}
	case protocol.EdgeTextDocumentHover:
		return protocol.TextDocumentHover{ID: id, OutV: outV, InV: inV}
	case protocol.EdgeTextDocumentReferences:
		return protocol.TextDocumentReferences{ID: id, OutV: outV, InV: inV}
	}

	return protocol.TextDocumentDefinition{ID: id, OutV: outV, InV: inV}
}
