package lsp

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/command"
	"github.com/sourcegraph/lsif-query/internal/log"
	lsif "github.com/sourcegraph/lsif-query/internal/protocol"
	"github.com/sourcegraph/lsif-query/internal/query"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Client is a connection to a live language server. Requests may be issued from
// multiple goroutines.
type Client struct {
	conn jsonrpc2.Conn
}

// NewClient speaks LSP over the given connection. The connection is closed by Close.
func NewClient(rwc io.ReadWriteCloser) *Client {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(context.Background(), handleServerMessage)

	return &Client{conn: conn}
}

// Start runs the given server command line and connects to it over its stdio.
func Start(ctx context.Context, dir, commandLine string) (*Client, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("empty language server command")
	}

	process, err := command.Start(ctx, dir, os.Stderr, fields[0], fields[1:]...)
	if err != nil {
		return nil, errors.Wrap(err, "starting language server")
	}

	return NewClient(process), nil
}

// handleServerMessage rejects server-initiated requests and drops notifications.
func handleServerMessage(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	log.Debugf("Ignoring language server message %s", req.Method())
	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

func (c *Client) closed() bool {
	select {
	case <-c.conn.Done():
		return true
	default:
		return false
	}
}

// call issues a request and decodes its raw result into result. Requests in flight
// fail with ErrClosed when the connection goes away.
func (c *Client) call(ctx context.Context, method string, params interface{}, result *json.RawMessage) error {
	if c.closed() {
		return ErrClosed
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-c.conn.Done():
			cancel()
		case <-callCtx.Done():
		}
	}()

	if _, err := c.conn.Call(callCtx, method, params, result); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if c.closed() {
			return ErrClosed
		}

		var rpcErr *jsonrpc2.Error
		if errors.As(err, &rpcErr) {
			return rpcErr
		}
		return errors.Wrap(err, method)
	}

	return nil
}

// Notify sends a notification to the server.
func (c *Client) Notify(ctx context.Context, method string, params interface{}) error {
	if c.closed() {
		return ErrClosed
	}

	return c.conn.Notify(ctx, method, params)
}

// Initialize performs the initialize handshake.
func (c *Client) Initialize(ctx context.Context, rootURI string) (*protocol.InitializeResult, error) {
	params := &protocol.InitializeParams{
		ProcessID:    int32(os.Getpid()),
		RootURI:      protocol.DocumentURI(rootURI),
		Capabilities: protocol.ClientCapabilities{},
	}

	var raw json.RawMessage
	if err := c.call(ctx, protocol.MethodInitialize, params, &raw); err != nil {
		return nil, err
	}

	var result protocol.InitializeResult
	if !isNull(raw) {
		if err := marshaller.Unmarshal(raw, &result); err != nil {
			return nil, errors.Wrap(err, "initialize result")
		}
	}

	if err := c.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		return nil, err
	}

	return &result, nil
}

// Hover requests the hover text at the given zero-based position.
func (c *Client) Hover(ctx context.Context, uri string, pos lsif.Pos) (string, bool, error) {
	params := &protocol.HoverParams{TextDocumentPositionParams: positionParams(uri, pos)}

	var raw json.RawMessage
	if err := c.call(ctx, protocol.MethodTextDocumentHover, params, &raw); err != nil {
		return "", false, err
	}
	if isNull(raw) {
		return "", false, nil
	}

	// Contents are decoded by hand: servers still send MarkedString forms that
	// protocol.Hover does not model.
	var payload struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := marshaller.Unmarshal(raw, &payload); err != nil {
		return "", false, errors.Wrap(err, "hover result")
	}

	text, err := hoverText(payload.Contents)
	if err != nil {
		return "", false, err
	}

	return text, text != "", nil
}

// Definition requests the definitions of the symbol at the given zero-based position.
func (c *Client) Definition(ctx context.Context, uri string, pos lsif.Pos) ([]query.Location, error) {
	params := &protocol.DefinitionParams{TextDocumentPositionParams: positionParams(uri, pos)}

	var raw json.RawMessage
	if err := c.call(ctx, protocol.MethodTextDocumentDefinition, params, &raw); err != nil {
		return nil, err
	}

	return decodeLocations(raw)
}

// References requests the references to the symbol at the given zero-based position,
// including its declaration.
func (c *Client) References(ctx context.Context, uri string, pos lsif.Pos) ([]query.Location, error) {
	params := &protocol.ReferenceParams{
		TextDocumentPositionParams: positionParams(uri, pos),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: true},
	}

	var raw json.RawMessage
	if err := c.call(ctx, protocol.MethodTextDocumentReferences, params, &raw); err != nil {
		return nil, err
	}

	return decodeLocations(raw)
}

// Shutdown asks the server to shut down and then to exit.
func (c *Client) Shutdown(ctx context.Context) error {
	var raw json.RawMessage
	if err := c.call(ctx, protocol.MethodShutdown, nil, &raw); err != nil {
		return err
	}

	return c.Notify(ctx, protocol.MethodExit, nil)
}

// Close closes the connection, which stops a server process started by Start, and
// waits for the read loop to finish.
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.conn.Done()
	return err
}

// hoverText flattens MarkupContent, MarkedString and MarkedString[] hover contents.
func hoverText(raw []byte) (string, error) {
	raw = []byte(strings.TrimSpace(string(raw)))
	if isNull(raw) {
		return "", nil
	}

	if raw[0] != '[' {
		return markedStringValue(raw)
	}

	var parts []json.RawMessage
	if err := marshaller.Unmarshal(raw, &parts); err != nil {
		return "", errors.Wrap(err, "hover contents")
	}

	values := make([]string, 0, len(parts))
	for _, part := range parts {
		value, err := markedStringValue(part)
		if err != nil {
			return "", err
		}
		values = append(values, value)
	}

	return strings.Join(values, "\n"), nil
}

func markedStringValue(raw []byte) (string, error) {
	var value string
	if len(raw) > 0 && raw[0] == '"' {
		err := marshaller.Unmarshal(raw, &value)
		return value, errors.Wrap(err, "hover content")
	}

	var content protocol.MarkupContent
	err := marshaller.Unmarshal(raw, &content)
	return content.Value, errors.Wrap(err, "hover content")
}

// decodeLocations accepts a Location, a Location[] or a LocationLink[]. Links resolve to
// their target selection range.
func decodeLocations(raw []byte) ([]query.Location, error) {
	raw = []byte(strings.TrimSpace(string(raw)))
	if isNull(raw) {
		return nil, nil
	}

	type locationOrLink struct {
		protocol.Location
		TargetURI            protocol.DocumentURI `json:"targetUri"`
		TargetSelectionRange protocol.Range       `json:"targetSelectionRange"`
	}

	var items []locationOrLink
	if raw[0] == '[' {
		if err := marshaller.Unmarshal(raw, &items); err != nil {
			return nil, errors.Wrap(err, "locations")
		}
	} else {
		var item locationOrLink
		if err := marshaller.Unmarshal(raw, &item); err != nil {
			return nil, errors.Wrap(err, "location")
		}
		items = append(items, item)
	}

	var locations []query.Location
	for _, item := range items {
		if item.TargetURI != "" {
			item.Location = protocol.Location{URI: item.TargetURI, Range: item.TargetSelectionRange}
		}
		locations = append(locations, fromLocation(item.Location))
	}

	return locations, nil
}
