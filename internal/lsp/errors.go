package lsp

import (
	"errors"
	"fmt"

	"go.lsp.dev/jsonrpc2"
)

// ErrClosed is returned by client operations after the connection has been closed.
var ErrClosed = errors.New("lsp connection closed")

// CodeServerNotInitialized is returned for requests that arrive before initialize.
const CodeServerNotInitialized jsonrpc2.Code = -32002

func newError(code jsonrpc2.Code, format string, args ...interface{}) *jsonrpc2.Error {
	return jsonrpc2.NewError(code, fmt.Sprintf(format, args...))
}
