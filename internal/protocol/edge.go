package protocol

// Edge is a directed connection of the index graph. The set of implementations is
// closed: see Contains, Next, TextDocumentHover, TextDocumentReferences,
// TextDocumentDefinition, Item, and OpaqueEdge.
type Edge interface {
	Element
	EdgeLabel() EdgeLabel
	// Source returns the outV of the edge.
	Source() ID
	// Targets returns the inV (as a single element) or the inVs of the edge.
	Targets() []ID
	isEdge()
}

// Contains is an edge object that represents 1:n "contains" relation.
type Contains struct {
	ID   ID
	OutV ID
	InVs []ID
}

// Next is an edge object that represents "next" relation.
type Next struct {
	ID   ID
	OutV ID
	InV  ID
}

// TextDocumentHover is an edge object that represents "textDocument/hover" relation.
type TextDocumentHover struct {
	ID   ID
	OutV ID
	InV  ID
}

// TextDocumentReferences is an edge object that represents "textDocument/references" relation.
type TextDocumentReferences struct {
	ID   ID
	OutV ID
	InV  ID
}

// TextDocumentDefinition is an edge object that represents "textDocument/definition" relation.
type TextDocumentDefinition struct {
	ID   ID
	OutV ID
	InV  ID
}

// Item associates a result vertex with the ranges that realize it.
type Item struct {
	ID       ID
	OutV     ID
	InVs     []ID
	Property ItemProperty
	// Shard is the identifier of the document vertex owning the targets. It is only
	// meaningful when HasShard is true.
	Shard    ID
	HasShard bool
}

// OpaqueEdge is an edge of the LSIF vocabulary that no resolver walks.
type OpaqueEdge struct {
	ID    ID
	Label EdgeLabel
	OutV  ID
	InVs  []ID
}

func (e Contains) ElementID() ID               { return e.ID }
func (e Next) ElementID() ID                   { return e.ID }
func (e TextDocumentHover) ElementID() ID      { return e.ID }
func (e TextDocumentReferences) ElementID() ID { return e.ID }
func (e TextDocumentDefinition) ElementID() ID { return e.ID }
func (e Item) ElementID() ID                   { return e.ID }
func (e OpaqueEdge) ElementID() ID             { return e.ID }

func (Contains) ElementType() ElementType               { return ElementEdge }
func (Next) ElementType() ElementType                   { return ElementEdge }
func (TextDocumentHover) ElementType() ElementType      { return ElementEdge }
func (TextDocumentReferences) ElementType() ElementType { return ElementEdge }
func (TextDocumentDefinition) ElementType() ElementType { return ElementEdge }
func (Item) ElementType() ElementType                   { return ElementEdge }
func (OpaqueEdge) ElementType() ElementType             { return ElementEdge }

func (Contains) EdgeLabel() EdgeLabel               { return EdgeContains }
func (Next) EdgeLabel() EdgeLabel                   { return EdgeNext }
func (TextDocumentHover) EdgeLabel() EdgeLabel      { return EdgeTextDocumentHover }
func (TextDocumentReferences) EdgeLabel() EdgeLabel { return EdgeTextDocumentReferences }
func (TextDocumentDefinition) EdgeLabel() EdgeLabel { return EdgeTextDocumentDefinition }
func (Item) EdgeLabel() EdgeLabel                   { return EdgeItem }
func (e OpaqueEdge) EdgeLabel() EdgeLabel           { return e.Label }

func (e Contains) Source() ID               { return e.OutV }
func (e Next) Source() ID                   { return e.OutV }
func (e TextDocumentHover) Source() ID      { return e.OutV }
func (e TextDocumentReferences) Source() ID { return e.OutV }
func (e TextDocumentDefinition) Source() ID { return e.OutV }
func (e Item) Source() ID                   { return e.OutV }
func (e OpaqueEdge) Source() ID             { return e.OutV }

func (e Contains) Targets() []ID               { return e.InVs }
func (e Next) Targets() []ID                   { return []ID{e.InV} }
func (e TextDocumentHover) Targets() []ID      { return []ID{e.InV} }
func (e TextDocumentReferences) Targets() []ID { return []ID{e.InV} }
func (e TextDocumentDefinition) Targets() []ID { return []ID{e.InV} }
func (e Item) Targets() []ID                   { return e.InVs }
func (e OpaqueEdge) Targets() []ID             { return e.InVs }

func (Contains) isEdge()               {}
func (Next) isEdge()                   {}
func (TextDocumentHover) isEdge()      {}
func (TextDocumentReferences) isEdge() {}
func (TextDocumentDefinition) isEdge() {}
func (Item) isEdge()                   {}
func (OpaqueEdge) isEdge()             {}
