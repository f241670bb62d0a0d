package protocol

import "strings"

// Vertex is a node of the index graph. The set of implementations is closed: see
// Document, Range, ResultSet, HoverResult, ReferenceResult, DefinitionResult, and
// OpaqueVertex.
type Vertex interface {
	Element
	VertexLabel() VertexLabel
	isVertex()
}

// Pos contains the precise position information of a range bound.
type Pos struct {
	// The line number.
	Line int `json:"line"`
	// The column of the character.
	Character int `json:"character"`
}

// Shift returns the position moved by delta on both axes.
func (p Pos) Shift(delta int) Pos {
	return Pos{Line: p.Line + delta, Character: p.Character + delta}
}

// Document is a vertex of a source document in the project.
type Document struct {
	ID ID
	// The URI indicates the location of the document.
	URI string
	// The language identifier of the document.
	LanguageID string
}

// Range is a vertex denoting a span of source text.
type Range struct {
	ID ID
	// The start position of the range.
	Start Pos
	// The end position of the range.
	End Pos
}

// Contains returns true if p lies within the inclusive bounds of the range. The line
// and character components are compared independently of each other.
func (r Range) Contains(p Pos) bool {
	return r.Start.Line <= p.Line && p.Line <= r.End.Line &&
		r.Start.Character <= p.Character && p.Character <= r.End.Character
}

// ResultSet acts as a hub to be able to store information common to a set of ranges.
type ResultSet struct {
	ID ID
}

// MarkedString is a single hover content fragment.
type MarkedString struct {
	// The language of the fragment, empty for raw strings and markup content.
	Language string
	// The text of the fragment.
	Value string
}

// HoverResult holds the hover contents shared by a set of ranges.
type HoverResult struct {
	ID       ID
	Contents []MarkedString
}

// Text joins the values of the hover fragments with newlines, preserving their order.
func (h HoverResult) Text() string {
	values := make([]string, 0, len(h.Contents))
	for _, content := range h.Contents {
		values = append(values, content.Value)
	}

	return strings.Join(values, "\n")
}

// ReferenceResult acts as a hub to be able to store reference information common to a set of ranges.
type ReferenceResult struct {
	ID ID
}

// DefinitionResult connects a definition that is spread over multiple ranges or multiple documents.
type DefinitionResult struct {
	ID ID
}

// OpaqueVertex is a vertex of the LSIF vocabulary whose payload is not interpreted.
type OpaqueVertex struct {
	ID    ID
	Label VertexLabel
}

func (v Document) ElementID() ID         { return v.ID }
func (v Range) ElementID() ID            { return v.ID }
func (v ResultSet) ElementID() ID        { return v.ID }
func (v HoverResult) ElementID() ID      { return v.ID }
func (v ReferenceResult) ElementID() ID  { return v.ID }
func (v DefinitionResult) ElementID() ID { return v.ID }
func (v OpaqueVertex) ElementID() ID     { return v.ID }

func (Document) ElementType() ElementType         { return ElementVertex }
func (Range) ElementType() ElementType            { return ElementVertex }
func (ResultSet) ElementType() ElementType        { return ElementVertex }
func (HoverResult) ElementType() ElementType      { return ElementVertex }
func (ReferenceResult) ElementType() ElementType  { return ElementVertex }
func (DefinitionResult) ElementType() ElementType { return ElementVertex }
func (OpaqueVertex) ElementType() ElementType     { return ElementVertex }

func (Document) VertexLabel() VertexLabel         { return VertexDocument }
func (Range) VertexLabel() VertexLabel            { return VertexRange }
func (ResultSet) VertexLabel() VertexLabel        { return VertexResultSet }
func (HoverResult) VertexLabel() VertexLabel      { return VertexHoverResult }
func (ReferenceResult) VertexLabel() VertexLabel  { return VertexReferenceResult }
func (DefinitionResult) VertexLabel() VertexLabel { return VertexDefinitionResult }
func (v OpaqueVertex) VertexLabel() VertexLabel   { return v.Label }

func (Document) isVertex()         {}
func (Range) isVertex()            {}
func (ResultSet) isVertex()        {}
func (HoverResult) isVertex()      {}
func (ReferenceResult) isVertex()  {}
func (DefinitionResult) isVertex() {}
func (OpaqueVertex) isVertex()     {}
