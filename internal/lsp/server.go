package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/log"
	lsif "github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/query"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Handler answers the navigation requests of a Server. Positions are zero-based.
type Handler interface {
	Hover(ctx context.Context, uri string, pos lsif.Pos) (string, bool, error)
	Definition(ctx context.Context, uri string, pos lsif.Pos) ([]query.Location, error)
	References(ctx context.Context, uri string, pos lsif.Pos) ([]query.Location, error)
	// Notify receives the text document notifications sent by the editor.
	Notify(ctx context.Context, method string, params interface{}) error
}

// Server is a language server front end for a Handler. Requests are served one at a
// time in the order they are received. A body that is not JSON is answered with a
// parse error and the session continues.
type Server struct {
	handler     Handler
	version     string
	initialized bool
	shutdown    bool
}

// NewServer creates a server that reports the given version in its initialize result.
func NewServer(handler Handler, version string) *Server {
	return &Server{handler: handler, version: version}
}

// Serve reads requests from r and writes responses to w until the client sends exit,
// the input ends, or the context is canceled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := ReadMessage(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var msg message
		if err := marshaller.Unmarshal(body, &msg); err != nil {
			if err := reply(w, json.RawMessage("null"), nil, newError(jsonrpc2.ParseError, "%s", err)); err != nil {
				return err
			}
			continue
		}

		if msg.isNotification() {
			if msg.Method == protocol.MethodExit {
				return nil
			}
			s.notify(ctx, &msg)
			continue
		}
		if len(msg.ID) == 0 {
			continue
		}

		result, rpcErr := s.handle(ctx, &msg)
		if err := reply(w, msg.ID, result, rpcErr); err != nil {
			return err
		}
	}
}

func (s *Server) notify(ctx context.Context, msg *message) {
	if !strings.HasPrefix(msg.Method, "textDocument/") {
		log.Debugf("Ignoring notification %s", msg.Method)
		return
	}

	if err := s.handler.Notify(ctx, msg.Method, msg.Params); err != nil {
		log.Infof("Failed to forward %s: %s", msg.Method, err)
	}
}

func (s *Server) handle(ctx context.Context, msg *message) (interface{}, *jsonrpc2.Error) {
	if msg.Method == protocol.MethodInitialize {
		s.initialized = true
		return protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync:   protocol.TextDocumentSyncKindFull,
				HoverProvider:      true,
				DefinitionProvider: true,
				ReferencesProvider: true,
			},
			ServerInfo: &protocol.ServerInfo{Name: "lsif-query", Version: s.version},
		}, nil
	}
	if !s.initialized {
		return nil, newError(CodeServerNotInitialized, "server not initialized")
	}
	if s.shutdown {
		return nil, newError(jsonrpc2.InvalidRequest, "server is shutting down")
	}

	switch msg.Method {
	case protocol.MethodShutdown:
		s.shutdown = true
		return nil, nil

	case protocol.MethodTextDocumentHover:
		var params protocol.TextDocumentPositionParams
		if err := marshaller.Unmarshal(msg.Params, &params); err != nil {
			return nil, newError(jsonrpc2.InvalidParams, "%s", err)
		}

		text, ok, err := s.handler.Hover(ctx, string(params.TextDocument.URI), fromPosition(params.Position))
		if err != nil {
			return nil, newError(jsonrpc2.InternalError, "%s", err)
		}
		if !ok {
			return nil, nil
		}
		return protocol.Hover{Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: text}}, nil

	case protocol.MethodTextDocumentDefinition:
		return s.locations(ctx, msg, s.handler.Definition)

	case protocol.MethodTextDocumentReferences:
		return s.locations(ctx, msg, s.handler.References)
	}

	return nil, newError(jsonrpc2.MethodNotFound, "method not found: %s", msg.Method)
}

type locationFunc func(ctx context.Context, uri string, pos lsif.Pos) ([]query.Location, error)

func (s *Server) locations(ctx context.Context, msg *message, fn locationFunc) (interface{}, *jsonrpc2.Error) {
	var params protocol.TextDocumentPositionParams
	if err := marshaller.Unmarshal(msg.Params, &params); err != nil {
		return nil, newError(jsonrpc2.InvalidParams, "%s", err)
	}

	locations, err := fn(ctx, string(params.TextDocument.URI), fromPosition(params.Position))
	if err != nil {
		return nil, newError(jsonrpc2.InternalError, "%s", err)
	}
	if len(locations) == 0 {
		return nil, nil
	}

	return toLocations(locations), nil
}

func reply(w io.Writer, id json.RawMessage, result interface{}, rpcErr *jsonrpc2.Error) error {
	resp := response{JSONRPC: jsonrpcVersion, ID: id, Error: rpcErr}
	if rpcErr == nil {
		raw, err := marshaller.Marshal(result)
		if err != nil {
			return errors.Wrap(err, "marshal result")
		}
		resp.Result = raw
	}

	return WriteMessage(w, resp)
}
