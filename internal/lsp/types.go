package lsp

import (
	"encoding/json"

	lsif "github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/query"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const jsonrpcVersion = "2.0"

// response is an outgoing JSON-RPC response. The id is echoed verbatim, so string,
// number and null ids survive the round trip.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc2.Error `json:"error,omitempty"`
}

// message is an incoming JSON-RPC request or notification.
type message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (m *message) isNotification() bool { return len(m.ID) == 0 && m.Method != "" }

func toPosition(p lsif.Pos) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Character)}
}

func fromPosition(p protocol.Position) lsif.Pos {
	return lsif.Pos{Line: int(p.Line), Character: int(p.Character)}
}

func toRange(span query.Span) protocol.Range {
	return protocol.Range{Start: toPosition(span.Start), End: toPosition(span.End)}
}

func fromRange(r protocol.Range) query.Span {
	return query.Span{Start: fromPosition(r.Start), End: fromPosition(r.End)}
}

func toLocations(locations []query.Location) []protocol.Location {
	converted := make([]protocol.Location, 0, len(locations))
	for _, location := range locations {
		converted = append(converted, protocol.Location{
			URI:   protocol.DocumentURI(location.URI),
			Range: toRange(location.Range),
		})
	}

	return converted
}

func fromLocation(location protocol.Location) query.Location {
	return query.Location{URI: string(location.URI), Range: fromRange(location.Range)}
}

func positionParams(uri string, pos lsif.Pos) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(uri)},
		Position:     toPosition(pos),
	}
}
