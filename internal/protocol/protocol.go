package protocol

import (
	"strconv"
	"strings"

	lsif "github.com/sourcegraph/sourcegraph/lib/codeintel/lsif/protocol"
)

/*
	Reference: https://microsoft.github.io/language-server-protocol/specifications/lsif/0.4.0/specification/

	Only the subset of the graph needed to answer hover, definition, and reference
	requests is modelled with concrete fields. Every other label of the LSIF vocabulary
	is decoded into an opaque vertex or edge so that real dumps load without error.
*/

// ID is the unique identifier of an element within one index.
type ID uint64

// UnmarshalJSON accepts both numeric identifiers and identifiers written as decimal
// strings, which older producers emit.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = ID(v)
	return nil
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ElementType distinguishes vertices from edges.
type ElementType string

const (
	ElementVertex ElementType = "vertex"
	ElementEdge   ElementType = "edge"
)

// VertexLabel represents the purpose of a vertex.
type VertexLabel string

const (
	VertexDocument         = VertexLabel(lsif.VertexDocument)
	VertexRange            = VertexLabel(lsif.VertexRange)
	VertexResultSet        = VertexLabel(lsif.VertexResultSet)
	VertexHoverResult      = VertexLabel(lsif.VertexHoverResult)
	VertexReferenceResult  = VertexLabel(lsif.VertexReferenceResult)
	VertexDefinitionResult = VertexLabel(lsif.VertexDefinitionResult)
	VertexMetaData         = VertexLabel(lsif.VertexMetaData)
	VertexProject          = VertexLabel(lsif.VertexProject)
)

// opaqueVertexLabels are LSIF vertex labels that are accepted but not interpreted.
var opaqueVertexLabels = map[VertexLabel]struct{}{
	VertexMetaData:         {},
	VertexProject:          {},
	"$event":               {},
	"location":             {},
	"moniker":              {},
	"packageInformation":   {},
	"documentSymbolResult": {},
	"foldingRangeResult":   {},
	"documentLinkResult":   {},
	"diagnosticResult":     {},
	"declarationResult":    {},
	"typeDefinitionResult": {},
	"implementationResult": {},
}

// IsOpaqueVertexLabel returns true if the given label belongs to the LSIF vocabulary but
// carries no data needed by the resolvers.
func IsOpaqueVertexLabel(label VertexLabel) bool {
	_, ok := opaqueVertexLabels[label]
	return ok
}

// EdgeLabel represents the purpose of an edge.
type EdgeLabel string

const (
	EdgeContains               = EdgeLabel(lsif.EdgeContains)
	EdgeItem                   = EdgeLabel(lsif.EdgeItem)
	EdgeNext                   = EdgeLabel(lsif.EdgeNext)
	EdgeTextDocumentHover      = EdgeLabel(lsif.EdgeTextDocumentHover)
	EdgeTextDocumentReferences = EdgeLabel(lsif.EdgeTextDocumentReferences)
	EdgeTextDocumentDefinition = EdgeLabel(lsif.EdgeTextDocumentDefinition)
)

var opaqueEdgeLabels = map[EdgeLabel]struct{}{
	"moniker":                     {},
	"nextMoniker":                 {},
	"packageInformation":          {},
	"belongsTo":                   {},
	"textDocument/documentSymbol": {},
	"textDocument/foldingRange":   {},
	"textDocument/documentLink":   {},
	"textDocument/diagnostic":     {},
	"textDocument/declaration":    {},
	"textDocument/typeDefinition": {},
	"textDocument/implementation": {},
}

// IsOpaqueEdgeLabel returns true if the given label belongs to the LSIF vocabulary but
// is not walked by any resolver.
func IsOpaqueEdgeLabel(label EdgeLabel) bool {
	_, ok := opaqueEdgeLabels[label]
	return ok
}

// ItemProperty tags an item edge with the kind of result it realizes.
type ItemProperty string

const (
	ItemDefinitions ItemProperty = "definitions"
	ItemReferences  ItemProperty = "references"
)

// Element is the common interface of every vertex and edge in the graph.
type Element interface {
	ElementID() ID
	ElementType() ElementType
}
